package event

import (
	"slices"
	"strings"
	"time"
)

// DefaultUpcomingLimit is how many events the upcoming view shows.
const DefaultUpcomingLimit = 5

// Days maps an ISO date to its events in insertion order.
type Days map[string][]Event

// Get returns the events for date, never nil.
func (d Days) Get(date string) []Event {
	if evs, ok := d[date]; ok && evs != nil {
		return evs
	}
	return []Event{}
}

// Dates returns the dates that have at least one event, ascending.
func (d Days) Dates() []string {
	dates := make([]string, 0, len(d))
	for date, evs := range d {
		if len(evs) > 0 {
			dates = append(dates, date)
		}
	}
	slices.Sort(dates)
	return dates
}

// All flattens the mapping in date order, then insertion order.
func (d Days) All() []Event {
	var all []Event
	for _, date := range d.Dates() {
		all = append(all, d[date]...)
	}
	return all
}

// Len returns the total number of events.
func (d Days) Len() int {
	n := 0
	for _, evs := range d {
		n += len(evs)
	}
	return n
}

// Find returns the event with id.
func (d Days) Find(id string) (Event, bool) {
	for _, evs := range d {
		for _, e := range evs {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Event{}, false
}

// Upcoming returns at most limit events that start after now, soonest first.
func Upcoming(days Days, now time.Time, limit int) []Event {
	type timed struct {
		ev    Event
		start time.Time
	}

	var candidates []timed
	for _, e := range days.All() {
		start, ok := e.Start(now.Location())
		if !ok || !start.After(now) {
			continue
		}
		candidates = append(candidates, timed{ev: e, start: start})
	}

	slices.SortStableFunc(candidates, func(a, b timed) int {
		return a.start.Compare(b.start)
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	result := make([]Event, len(candidates))
	for i, c := range candidates {
		result[i] = c.ev
	}
	return result
}

// Search matches query against title and description, ignoring case, and
// against the ISO date as a plain substring. An empty query matches all.
func Search(days Days, query string) []Event {
	query = strings.TrimSpace(query)
	needle := strings.ToLower(query)

	var result []Event
	for _, e := range days.All() {
		if query == "" ||
			strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.Description), needle) ||
			strings.Contains(e.Date, query) {
			result = append(result, e)
		}
	}
	return result
}
