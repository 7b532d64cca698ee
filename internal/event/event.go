// Package event defines the calendar event model and the pure views derived from it.
package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// ErrValidation is wrapped by every ValidationError.
var ErrValidation = errors.New("invalid event")

// ValidationError reports a rejected field before any store mutation happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// Priority ranks an event and can stand in for an explicit colour.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts any casing of High, Medium or Low. Empty means none.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityNone, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return PriorityNone, invalid("priority", fmt.Sprintf("unknown priority %q", s))
	}
}

// Palette colours.
const (
	ColorBlue   = "#3b82f6"
	ColorGreen  = "#10b981"
	ColorOrange = "#f59e42"
	ColorRed    = "#ef4444"
	ColorPurple = "#a855f7"
	ColorYellow = "#fbbf24"
)

// Palette lists the colours an event may carry, in picker order.
var Palette = []string{ColorBlue, ColorGreen, ColorOrange, ColorRed, ColorPurple, ColorYellow}

var colorNames = map[string]string{
	"blue":   ColorBlue,
	"green":  ColorGreen,
	"orange": ColorOrange,
	"red":    ColorRed,
	"purple": ColorPurple,
	"yellow": ColorYellow,
}

// ColorName returns the palette name for a hex colour, or the input unchanged.
func ColorName(hex string) string {
	for name, h := range colorNames {
		if strings.EqualFold(h, hex) {
			return name
		}
	}
	return hex
}

// ParseColor resolves a palette name or hex value. Empty stays empty.
func ParseColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	if hex, ok := colorNames[s]; ok {
		return hex, nil
	}
	if slices.Contains(Palette, s) {
		return s, nil
	}
	return "", invalid("color", fmt.Sprintf("%q is not in the palette", s))
}

// PriorityColor returns the colour a priority maps to.
func PriorityColor(p Priority) string {
	switch p {
	case PriorityHigh:
		return ColorRed
	case PriorityMedium:
		return ColorOrange
	case PriorityLow:
		return ColorGreen
	default:
		return ColorBlue
	}
}

// ReminderOptions are the allowed minutes-before values.
var ReminderOptions = []int{0, 5, 10, 15, 30, 60}

// Event is a single calendar entry.
type Event struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date,omitempty" yaml:"date"`
	Time        string   `json:"time,omitempty" yaml:"time"`
	EndTime     string   `json:"endTime,omitempty" yaml:"end_time"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Color       string   `json:"color,omitempty" yaml:"color"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority"`
	Reminder    *int     `json:"reminder,omitempty" yaml:"reminder"`
}

// Reminder returns a pointer to minutes, for building events literally.
func Reminder(minutes int) *int {
	return &minutes
}

// Clone returns a copy that shares no pointers with e.
func (e Event) Clone() Event {
	if e.Reminder != nil {
		e.Reminder = Reminder(*e.Reminder)
	}
	return e
}

// Normalize trims fields, canonicalises times and colour, and validates.
// The returned event is what the store persists.
func (e Event) Normalize() (Event, error) {
	e = e.Clone()
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	e.Date = strings.TrimSpace(e.Date)

	if e.Title == "" {
		return Event{}, invalid("title", "cannot be empty")
	}
	if !dateutil.ValidISO(e.Date) {
		return Event{}, invalid("date", dateutil.ErrInvalidDateFormat.Error())
	}

	var err error
	if e.Time, err = NormalizeClock(e.Time); err != nil {
		return Event{}, invalid("time", err.Error())
	}
	if e.EndTime, err = NormalizeClock(e.EndTime); err != nil {
		return Event{}, invalid("endTime", err.Error())
	}
	if e.EndTime != "" && e.Time == "" {
		return Event{}, invalid("endTime", "requires a start time")
	}
	if e.Time != "" && e.Time == e.EndTime {
		return Event{}, invalid("endTime", "start and end time cannot be the same")
	}

	if e.Priority, err = ParsePriority(string(e.Priority)); err != nil {
		return Event{}, err
	}
	if e.Color, err = ParseColor(e.Color); err != nil {
		return Event{}, err
	}
	if e.Color == "" {
		e.Color = PriorityColor(e.Priority)
	}

	if e.Reminder != nil && !slices.Contains(ReminderOptions, *e.Reminder) {
		return Event{}, invalid("reminder", fmt.Sprintf("must be one of %v minutes", ReminderOptions))
	}
	return e, nil
}

// HasTime reports whether the event has a start time.
func (e Event) HasTime() bool {
	return e.Time != ""
}

// StartMinutes returns the start as minutes since midnight, 0 when untimed.
func (e Event) StartMinutes() int {
	return ClockMinutes(e.Time)
}

// SpansNextDay reports whether the end time falls on the following day.
func (e Event) SpansNextDay() bool {
	if e.Time == "" || e.EndTime == "" {
		return false
	}
	return ClockMinutes(e.EndTime) < ClockMinutes(e.Time)
}

// Start returns the start instant in loc. Untimed events start at midnight.
// ok is false when the date cannot be parsed.
func (e Event) Start(loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(dateutil.ISODate, e.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(time.Duration(e.StartMinutes()) * time.Minute), true
}

// Span returns start and end instants in loc. Events without an end time
// end when they start; an end before the start rolls into the next day.
func (e Event) Span(loc *time.Location) (start, end time.Time, ok bool) {
	start, ok = e.Start(loc)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if e.EndTime == "" {
		return start, start, true
	}
	day := dateutil.TruncateToDay(start)
	end = day.Add(time.Duration(ClockMinutes(e.EndTime)) * time.Minute)
	if e.SpansNextDay() {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, true
}

// ReminderAt returns when the reminder should fire. ok is false for events
// without a reminder or without a start time.
func (e Event) ReminderAt(loc *time.Location) (time.Time, bool) {
	if e.Reminder == nil || !e.HasTime() {
		return time.Time{}, false
	}
	start, ok := e.Start(loc)
	if !ok {
		return time.Time{}, false
	}
	return start.Add(-time.Duration(*e.Reminder) * time.Minute), true
}

// TimeRange formats "start – end" for display, or "All day".
func (e Event) TimeRange() string {
	switch {
	case e.Time == "":
		return "All day"
	case e.EndTime == "":
		return e.Time
	case e.SpansNextDay():
		return e.Time + " – " + e.EndTime + " (+1d)"
	default:
		return e.Time + " – " + e.EndTime
	}
}
