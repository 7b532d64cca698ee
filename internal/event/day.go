package event

import (
	"slices"
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// DefaultCurrentWindow is how close to now an event must start to be surfaced.
const DefaultCurrentWindow = 30 * time.Minute

// SortByTime returns a copy of events ordered by start time. Events with the
// same start keep their insertion order.
func SortByTime(events []Event) []Event {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return a.StartMinutes() - b.StartMinutes()
	})
	return sorted
}

// Aggregate orders the events of date for display. Events are sorted by start
// time; when date is today and an event starts within window of now, the
// first such event is moved to the front.
func Aggregate(events []Event, date string, now time.Time, window time.Duration) []Event {
	sorted := SortByTime(events)
	if len(sorted) < 2 || date != dateutil.FormatISO(now) {
		return sorted
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	limit := int(window / time.Minute)
	idx := slices.IndexFunc(sorted, func(e Event) bool {
		d := e.StartMinutes() - nowMinutes
		if d < 0 {
			d = -d
		}
		return d <= limit
	})
	if idx <= 0 {
		return sorted
	}

	current := sorted[idx]
	copy(sorted[1:idx+1], sorted[:idx])
	sorted[0] = current
	return sorted
}

// CurrentIndex returns the index of the event surfaced as current, or -1.
func CurrentIndex(aggregated []Event, date string, now time.Time, window time.Duration) int {
	if len(aggregated) == 0 || date != dateutil.FormatISO(now) {
		return -1
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	d := aggregated[0].StartMinutes() - nowMinutes
	if d < 0 {
		d = -d
	}
	if d <= int(window/time.Minute) {
		return 0
	}
	return -1
}

// Page returns the page-th slice of perPage events and the number of pages.
// Out-of-range pages are clamped.
func Page(events []Event, page, perPage int) ([]Event, int) {
	if perPage <= 0 || len(events) == 0 {
		return events, 1
	}
	pages := (len(events) + perPage - 1) / perPage
	page = max(0, min(pages-1, page))
	start := page * perPage
	end := min(len(events), start+perPage)
	return events[start:end], pages
}

// Neighbors returns the events before and after id in a time-sorted day.
func Neighbors(sorted []Event, id string) (prev, next *Event) {
	idx := slices.IndexFunc(sorted, func(e Event) bool { return e.ID == id })
	if idx < 0 {
		return nil, nil
	}
	if idx > 0 {
		p := sorted[idx-1]
		prev = &p
	}
	if idx < len(sorted)-1 {
		n := sorted[idx+1]
		next = &n
	}
	return prev, next
}
