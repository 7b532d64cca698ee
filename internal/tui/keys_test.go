package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/tui/commands"
)

func TestHandleGridKeys_Navigation(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantDate  string
		wantYear  int
		wantMonth time.Month
	}{
		{name: "right", keys: []string{"l"}, wantDate: "2025-06-12", wantYear: 2025, wantMonth: time.June},
		{name: "left arrow", keys: []string{"left"}, wantDate: "2025-06-10", wantYear: 2025, wantMonth: time.June},
		{name: "down a week", keys: []string{"j"}, wantDate: "2025-06-18", wantYear: 2025, wantMonth: time.June},
		{name: "up a week", keys: []string{"k"}, wantDate: "2025-06-04", wantYear: 2025, wantMonth: time.June},
		{name: "across month end", keys: []string{"j", "j", "j"}, wantDate: "2025-07-02", wantYear: 2025, wantMonth: time.July},
		{name: "next month", keys: []string{"]"}, wantDate: "2025-07-11", wantYear: 2025, wantMonth: time.July},
		{name: "prev month", keys: []string{"["}, wantDate: "2025-05-11", wantYear: 2025, wantMonth: time.May},
		{name: "next year", keys: []string{"}"}, wantDate: "2026-06-11", wantYear: 2026, wantMonth: time.June},
		{name: "prev year", keys: []string{"{"}, wantDate: "2024-06-11", wantYear: 2024, wantMonth: time.June},
		{name: "back to today", keys: []string{"]", "]", "l", "t"}, wantDate: "2025-06-11", wantYear: 2025, wantMonth: time.June},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel()
			m = press(m, tt.keys...)

			if m.cal.Selected != tt.wantDate {
				t.Errorf("Selected = %q, want %q", m.cal.Selected, tt.wantDate)
			}
			if m.cal.Year != tt.wantYear || m.cal.Month != tt.wantMonth {
				t.Errorf("view = %d %s, want %d %s", m.cal.Year, m.cal.Month, tt.wantYear, tt.wantMonth)
			}
			if got := m.Mode(); got != ModeGrid {
				t.Errorf("Mode() = %s, want Grid", got)
			}
		})
	}
}

func TestHandleKeyMsg_CtrlCQuitsFromAnyMode(t *testing.T) {
	m, _ := newTestModel(sampleEvents()...)
	m = press(m, "/")
	if m.Mode() != ModeSearch {
		t.Fatalf("Mode() = %s, want Search", m.Mode())
	}

	_, cmd := m.handleKeyMsg(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
	}
}

func TestPanel_OpenStepAndClose(t *testing.T) {
	m, _ := newTestModel(sampleEvents()...)

	m = press(m, "enter")
	if m.Mode() != ModePanel || m.cal.SelectedEvent != "a" {
		t.Fatalf("after enter: mode %s, event %q", m.Mode(), m.cal.SelectedEvent)
	}

	steps := []struct {
		key  string
		want string
	}{
		{"n", "b"},
		{"n", "b"}, // last event stays put
		{"p", "a"},
		{"p", "a"},
	}
	for _, s := range steps {
		m = press(m, s.key)
		if m.cal.SelectedEvent != s.want {
			t.Fatalf("after %q: event %q, want %q", s.key, m.cal.SelectedEvent, s.want)
		}
	}

	m = press(m, "esc")
	if m.Mode() != ModeGrid {
		t.Errorf("Mode() = %s, want Grid", m.Mode())
	}
}

func TestPanel_StepFollowsDisplayOrder(t *testing.T) {
	review := event.Event{ID: "r", Title: "Review", Date: "2025-06-11", Time: "10:15 AM"}
	m, _ := newTestModel(append(sampleEvents(), review)...)

	// Review starts within the current window, so it is shown first.
	m = press(m, "enter")
	if m.cal.SelectedEvent != "r" {
		t.Fatalf("after enter: event %q, want r", m.cal.SelectedEvent)
	}

	for _, s := range []struct {
		key  string
		want string
	}{
		{"n", "a"},
		{"n", "b"},
		{"p", "a"},
		{"p", "r"},
	} {
		m = press(m, s.key)
		if m.cal.SelectedEvent != s.want {
			t.Fatalf("after %q: event %q, want %q", s.key, m.cal.SelectedEvent, s.want)
		}
	}
	if got := m.eventDetail(review).Position; got != "1 of 3" {
		t.Errorf("Position = %q, want 1 of 3", got)
	}
}

func TestPanel_CopyReturnsCommand(t *testing.T) {
	m, _ := newTestModel(sampleEvents()...)
	m = press(m, "enter")

	_, cmd := m.handleKeyMsg(keyMsg("c"))
	if cmd == nil {
		t.Fatal("expected clipboard command")
	}
}

func TestEventClipboardText(t *testing.T) {
	e := sampleEvents()[0]
	e.Description = "Daily sync"

	want := "Standup\n2025-06-11 9:00 AM – 9:15 AM\n\nDaily sync"
	if got := eventClipboardText(e); got != want {
		t.Errorf("eventClipboardText() = %q, want %q", got, want)
	}
}

func TestGridKeys_NoEventsOnDay(t *testing.T) {
	for _, k := range []string{"e", "d", "enter"} {
		t.Run(k, func(t *testing.T) {
			m, _ := newTestModel(sampleEvents()...)
			m = press(m, "l", k)

			if m.Mode() != ModeGrid {
				t.Errorf("Mode() = %s, want Grid", m.Mode())
			}
			if !m.statusErr || m.statusMsg != "Error: no events on this day" {
				t.Errorf("status = %q (err %v)", m.statusMsg, m.statusErr)
			}
		})
	}
}

func TestConfirmDelete(t *testing.T) {
	t.Run("yes deletes", func(t *testing.T) {
		m, st := newTestModel(sampleEvents()...)
		m = press(m, "d")
		if m.Mode() != ModeConfirmDelete || m.confirmDelete != "a" {
			t.Fatalf("after d: mode %s, confirm %q", m.Mode(), m.confirmDelete)
		}

		m, cmd := m.handleKeyMsg(keyMsg("y"))
		if cmd == nil {
			t.Fatal("expected delete command")
		}
		if m.Mode() != ModeGrid {
			t.Errorf("Mode() = %s, want Grid", m.Mode())
		}

		msg := cmd()
		deleted, ok := msg.(commands.EventDeletedMsg)
		if !ok {
			t.Fatalf("cmd() = %T, want EventDeletedMsg", msg)
		}
		if len(st.deleted) != 1 || st.deleted[0] != "a" {
			t.Errorf("store deleted %v, want [a]", st.deleted)
		}

		updated, _ := m.Update(deleted)
		m = updated.(Model)
		if _, ok := m.days.Find("a"); ok {
			t.Error("deleted event still in model")
		}
		if m.statusMsg != "Deleted Standup" {
			t.Errorf("status = %q", m.statusMsg)
		}
	})

	t.Run("no cancels", func(t *testing.T) {
		m, st := newTestModel(sampleEvents()...)
		m = press(m, "enter", "d")
		if m.Mode() != ModeConfirmDelete {
			t.Fatalf("Mode() = %s, want ConfirmDelete", m.Mode())
		}

		m, cmd := m.handleKeyMsg(keyMsg("n"))
		if cmd != nil {
			t.Error("expected no command")
		}
		if m.Mode() != ModePanel {
			t.Errorf("Mode() = %s, want Panel", m.Mode())
		}
		if len(st.deleted) != 0 {
			t.Errorf("store deleted %v", st.deleted)
		}
	})
}

func TestMonthPicker(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantMonth time.Month
		wantDate  string
	}{
		{name: "arrow right", keys: []string{"m", "right", "enter"}, wantMonth: time.July, wantDate: "2025-07-11"},
		{name: "arrow down moves a row", keys: []string{"m", "down", "enter"}, wantMonth: time.September, wantDate: "2025-09-11"},
		{name: "wraps", keys: []string{"m", "up", "up", "enter"}, wantMonth: time.December, wantDate: "2025-12-11"},
		{name: "unique prefix", keys: []string{"m", "o", "enter"}, wantMonth: time.October, wantDate: "2025-10-11"},
		{name: "ambiguous prefix takes first", keys: []string{"m", "j", "enter"}, wantMonth: time.January, wantDate: "2025-01-11"},
		{name: "narrowed prefix", keys: []string{"m", "j", "u", "l", "enter"}, wantMonth: time.July, wantDate: "2025-07-11"},
		{name: "unknown letter ignored", keys: []string{"m", "x", "enter"}, wantMonth: time.June, wantDate: "2025-06-11"},
		{name: "esc keeps month", keys: []string{"m", "right", "esc"}, wantMonth: time.June, wantDate: "2025-06-11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel()
			m = press(m, tt.keys...)

			if m.Mode() != ModeGrid {
				t.Fatalf("Mode() = %s, want Grid", m.Mode())
			}
			if m.cal.Month != tt.wantMonth || m.cal.Year != 2025 {
				t.Errorf("view = %d %s, want 2025 %s", m.cal.Year, m.cal.Month, tt.wantMonth)
			}
			if m.cal.Selected != tt.wantDate {
				t.Errorf("Selected = %q, want %q", m.cal.Selected, tt.wantDate)
			}
		})
	}
}

func TestMonthPicker_Backspace(t *testing.T) {
	m, _ := newTestModel()
	m = press(m, "m", "j", "u")
	if m.monthTyped != "ju" {
		t.Fatalf("monthTyped = %q, want ju", m.monthTyped)
	}
	m = press(m, "backspace")
	if m.monthTyped != "j" {
		t.Errorf("monthTyped = %q, want j", m.monthTyped)
	}
}

func TestShiftMonth(t *testing.T) {
	tests := []struct {
		from  time.Month
		delta int
		want  time.Month
	}{
		{time.January, -1, time.December},
		{time.December, 1, time.January},
		{time.November, 3, time.February},
		{time.February, -3, time.November},
		{time.June, 0, time.June},
	}
	for _, tt := range tests {
		if got := shiftMonth(tt.from, tt.delta); got != tt.want {
			t.Errorf("shiftMonth(%s, %d) = %s, want %s", tt.from, tt.delta, got, tt.want)
		}
	}
}

func TestYearPicker(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		wantYear int
	}{
		{name: "typed year", keys: []string{"y", "2", "0", "3", "0", "enter"}, wantYear: 2030},
		{name: "typed year outside list", keys: []string{"y", "1", "9", "9", "9", "enter"}, wantYear: 1999},
		{name: "cursor starts on current year", keys: []string{"y", "enter"}, wantYear: 2025},
		{name: "cursor moves", keys: []string{"y", "down", "down", "enter"}, wantYear: 2027},
		{name: "prefix picks first match", keys: []string{"y", "2", "0", "3", "enter"}, wantYear: 2030},
		{name: "letters ignored", keys: []string{"y", "x", "enter"}, wantYear: 2025},
		{name: "esc keeps year", keys: []string{"y", "2", "0", "3", "0", "esc"}, wantYear: 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel()
			m = press(m, tt.keys...)

			if m.Mode() != ModeGrid {
				t.Fatalf("Mode() = %s, want Grid", m.Mode())
			}
			if m.cal.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", m.cal.Year, tt.wantYear)
			}
			if m.cal.Month != time.June {
				t.Errorf("Month = %s, want June", m.cal.Month)
			}
		})
	}
}

func TestSearch_EnterJumpsToEvent(t *testing.T) {
	m, _ := newTestModel(sampleEvents()...)
	m = press(m, "/", "holi")
	if m.Mode() != ModeSearch {
		t.Fatalf("Mode() = %s, want Search", m.Mode())
	}
	if got := len(m.searchResults()); got != 1 {
		t.Fatalf("results = %d, want 1", got)
	}

	m = press(m, "enter")
	if m.Mode() != ModePanel || m.cal.SelectedEvent != "c" {
		t.Fatalf("after enter: mode %s, event %q", m.Mode(), m.cal.SelectedEvent)
	}
	if m.cal.Selected != "2025-06-20" {
		t.Errorf("Selected = %q, want 2025-06-20", m.cal.Selected)
	}
}

func TestSearch_CursorAndEsc(t *testing.T) {
	m, _ := newTestModel(sampleEvents()...)
	m = press(m, "/", "down", "down", "down")
	if m.searchCursor != 2 {
		t.Errorf("searchCursor = %d, want 2", m.searchCursor)
	}

	m = press(m, "l")
	if m.searchCursor != 0 {
		t.Errorf("typing should reset the cursor, got %d", m.searchCursor)
	}

	m = press(m, "esc")
	if m.Mode() != ModeGrid {
		t.Errorf("Mode() = %s, want Grid", m.Mode())
	}
}

func TestSearch_EnterWithNoResults(t *testing.T) {
	m, _ := newTestModel(sampleEvents()...)
	m = press(m, "/", "zzz", "enter")
	if m.Mode() != ModeSearch {
		t.Errorf("Mode() = %s, want Search", m.Mode())
	}
}
