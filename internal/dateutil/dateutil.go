// Package dateutil provides date parsing and calendar arithmetic helpers.
package dateutil

import (
	"errors"
	"strings"
	"time"
)

// ISODate is the layout used for date keys throughout almanac.
const ISODate = "2006-01-02"

// Year bounds accepted by the navigation state and year pickers.
const (
	MinYear = 1901
	MaxYear = 2100
)

// Validation errors.
var (
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
	ErrEndDateBeforeStart = errors.New("end date must be on or after start date")
)

// weekdayMap maps weekday names to time.Weekday values.
var weekdayMap = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// DateRange represents a validated date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a new DateRange with validation.
// Both dates accept the same input as ParseRelativeDate relative to now.
// An empty endDate defaults to startDate.
func NewDateRange(startDate, endDate string, now time.Time) (*DateRange, error) {
	start, err := ParseRelativeDate(startDate, now)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = ParseRelativeDate(endDate, now)
		if err != nil {
			return nil, err
		}
	}

	if end.Before(start) {
		return nil, ErrEndDateBeforeStart
	}

	return &DateRange{Start: start, End: end}, nil
}

// Days returns the ISO keys of every day in the range, inclusive.
func (r DateRange) Days() []string {
	var keys []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		keys = append(keys, FormatISO(d))
	}
	return keys
}

// ParseDate parses a date string in YYYY-MM-DD format in the local timezone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODate, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// FormatISO formats t as a YYYY-MM-DD key.
func FormatISO(t time.Time) string {
	return t.Format(ISODate)
}

// ValidISO reports whether s is a well-formed YYYY-MM-DD date.
func ValidISO(s string) bool {
	_, err := time.Parse(ISODate, s)
	return err == nil
}

// TruncateToDay returns t with time set to midnight.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysInMonth returns the number of days in the given month.
// Months outside 1..12 are normalised the way time.Date does.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths shifts (year, month) by delta months, carrying into the year.
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	idx := year*12 + int(month-1) + delta
	y := idx / 12
	m := idx % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, time.Month(m + 1)
}

// ClampYear limits y to [MinYear, MaxYear].
func ClampYear(y int) int {
	return max(MinYear, min(MaxYear, y))
}

// ParseRelativeDate parses a date string that can be:
//   - Empty string or "today": returns relativeTo date
//   - Absolute date: "2025-01-15" (YYYY-MM-DD)
//   - Keywords: "tomorrow", "yesterday"
//   - Weekday names: "monday" through "sunday" (next occurrence, always future)
//   - Next prefixed: "next-monday" through "next-sunday", "next-week"
//
// All inputs are case-insensitive. Dates in the past are allowed.
// Returns ErrInvalidDateFormat for unrecognized input.
func ParseRelativeDate(s string, relativeTo time.Time) (time.Time, error) {
	today := TruncateToDay(relativeTo)
	input := strings.ToLower(strings.TrimSpace(s))

	switch input {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "next-week":
		return today.AddDate(0, 0, 7), nil
	}

	if strings.HasPrefix(input, "next-") {
		weekdayName := strings.TrimPrefix(input, "next-")
		if targetDay, ok := weekdayMap[weekdayName]; ok {
			return nextWeekday(today, targetDay), nil
		}
		return time.Time{}, ErrInvalidDateFormat
	}

	if targetDay, ok := weekdayMap[input]; ok {
		return nextWeekday(today, targetDay), nil
	}

	result, err := time.ParseInLocation(ISODate, input, relativeTo.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return result, nil
}

// nextWeekday returns the next occurrence of the given weekday after today.
// If today is the target weekday, returns one week from today.
func nextWeekday(today time.Time, target time.Weekday) time.Time {
	daysUntil := int(target) - int(today.Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}
	return today.AddDate(0, 0, daysUntil)
}
