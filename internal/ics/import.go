package ics

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
)

// DefaultHorizon is how far ahead recurring events are expanded.
const DefaultHorizon = 90 * 24 * time.Hour

// maxOccurrences caps a single recurring event. maxScanned caps how many
// occurrences are stepped through, including those before the range.
const (
	maxOccurrences = 1000
	maxScanned     = 100 * maxOccurrences
)

// ImportOptions controls recurrence expansion.
type ImportOptions struct {
	// From and To bound the occurrences of recurring events. Single events
	// are imported whatever their date.
	From time.Time
	To   time.Time
	// Location is the zone dates and times are converted to.
	Location *time.Location
}

// DefaultImportOptions expands recurrences over DefaultHorizon from now.
func DefaultImportOptions(now time.Time) ImportOptions {
	from := dateutil.TruncateToDay(now)
	return ImportOptions{From: from, To: from.Add(DefaultHorizon), Location: now.Location()}
}

// Import reads an iCalendar stream into events ready for the store. They are
// normalised but carry no IDs.
func Import(r io.Reader, opts ImportOptions) ([]event.Event, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.To.Before(opts.From) {
		return nil, fmt.Errorf("import range ends before it starts")
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}
	vevents, err := parse(body, opts.Location)
	if err != nil {
		return nil, err
	}

	var out []event.Event
	for _, ve := range vevents {
		starts := []time.Time{ve.Start}
		if ve.RRule != "" {
			starts, err = expand(ve, opts)
			if err != nil {
				applog.Error("skipping recurring vevent", err, "uid", ve.UID, "rrule", ve.RRule)
				continue
			}
		}

		for _, start := range starts {
			e, err := toEvent(ve, start)
			if err != nil {
				applog.Error("skipping vevent", err, "uid", ve.UID)
				continue
			}
			out = append(out, e)
		}
	}

	slices.SortStableFunc(out, func(a, b event.Event) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}
			return 1
		}
		return a.StartMinutes() - b.StartMinutes()
	})
	applog.Info("ics import parsed", "vevents", len(vevents), "events", len(out))
	return out, nil
}

func expand(ve vevent, opts ImportOptions) ([]time.Time, error) {
	r, err := rrule.StrToRRule(ve.RRule)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE: %w", err)
	}
	r.DTStart(ve.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ve.ExDates {
		set.ExDate(ex.In(ve.Start.Location()))
	}

	from, to := opts.From.In(opts.Location), opts.To.In(opts.Location)
	next := set.Iterator()
	var starts []time.Time
	for scanned := 0; ; scanned++ {
		t, ok := next()
		if !ok || t.After(to) {
			break
		}
		if scanned == maxScanned {
			applog.Info("recurrence scan stopped", "uid", ve.UID, "scanned", scanned)
			break
		}
		if t.Before(from) {
			continue
		}
		if len(starts) == maxOccurrences {
			applog.Info("recurrence truncated", "uid", ve.UID, "cap", maxOccurrences)
			break
		}
		starts = append(starts, t)
	}
	return starts, nil
}

func toEvent(ve vevent, start time.Time) (event.Event, error) {
	e := event.Event{
		Title:       ve.Summary,
		Date:        dateutil.FormatISO(start),
		Description: ve.Description,
		Color:       ve.Color,
		Priority:    priorityFromICS(ve.Priority),
	}
	if e.Title == "" {
		e.Title = "Untitled"
	}
	if _, err := event.ParseColor(e.Color); err != nil {
		e.Color = ""
	}

	if !ve.AllDay {
		e.Time = event.FormatClock(start.Hour()*60 + start.Minute())
		end := start.Add(ve.End.Sub(ve.Start))
		if d := end.Sub(start); d > 0 && d < 24*time.Hour {
			endMinutes := end.Hour()*60 + end.Minute()
			if endMinutes != start.Hour()*60+start.Minute() {
				e.EndTime = event.FormatClock(endMinutes)
			}
		}
		if ve.Reminder != nil && slices.Contains(event.ReminderOptions, *ve.Reminder) {
			e.Reminder = event.Reminder(*ve.Reminder)
		}
	}
	return e.Normalize()
}

// priorityFromICS maps RFC 5545 PRIORITY (1 highest, 9 lowest, 0 undefined).
func priorityFromICS(p int) event.Priority {
	switch {
	case p >= 1 && p <= 4:
		return event.PriorityHigh
	case p == 5:
		return event.PriorityMedium
	case p >= 6 && p <= 9:
		return event.PriorityLow
	default:
		return event.PriorityNone
	}
}

func priorityToICS(p event.Priority) int {
	switch p {
	case event.PriorityHigh:
		return 1
	case event.PriorityMedium:
		return 5
	case event.PriorityLow:
		return 9
	default:
		return 0
	}
}
