package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/clock"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/event"
)

// fakeStore keeps events in memory for model tests.
type fakeStore struct {
	days    event.Days
	nextID  int
	deleted []string
}

func newFakeStore(events ...event.Event) *fakeStore {
	f := &fakeStore{days: event.Days{}}
	for _, e := range events {
		f.days[e.Date] = append(f.days[e.Date], e)
	}
	return f
}

func (f *fakeStore) Snapshot() event.Days {
	out := event.Days{}
	for date, evs := range f.days {
		out[date] = append([]event.Event(nil), evs...)
	}
	return out
}

func (f *fakeStore) Add(_ context.Context, e event.Event) (event.Event, error) {
	f.nextID++
	e.ID = fmt.Sprintf("new-%d", f.nextID)
	f.days[e.Date] = append(f.days[e.Date], e)
	return e, nil
}

func (f *fakeStore) Update(_ context.Context, id string, e event.Event) (event.Event, error) {
	if _, err := f.Delete(context.Background(), id); err != nil {
		return event.Event{}, err
	}
	e.ID = id
	f.days[e.Date] = append(f.days[e.Date], e)
	return e, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (event.Event, error) {
	for date, evs := range f.days {
		for i, e := range evs {
			if e.ID == id {
				f.days[date] = append(evs[:i:i], evs[i+1:]...)
				f.deleted = append(f.deleted, id)
				return e, nil
			}
		}
	}
	return event.Event{}, errors.New("not found")
}

// testNow is Wednesday 11 June 2025, 10:00.
var testNow = time.Date(2025, time.June, 11, 10, 0, 0, 0, time.UTC)

func newTestModel(events ...event.Event) (Model, *fakeStore) {
	st := newFakeStore(events...)
	m := New(st, config.Default(), WithClock(clock.Fixed(testNow)))
	m.width, m.height = 120, 40
	return m, st
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = m.handleKeyMsg(keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func sampleEvents() []event.Event {
	return []event.Event{
		{ID: "a", Title: "Standup", Date: "2025-06-11", Time: "9:00 AM", EndTime: "9:15 AM", Color: event.ColorBlue},
		{ID: "b", Title: "Lunch", Date: "2025-06-11", Time: "12:30 PM", Priority: event.PriorityHigh},
		{ID: "c", Title: "Holiday", Date: "2025-06-20"},
	}
}
