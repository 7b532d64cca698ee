package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/input"
)

var (
	errEventGone = errors.New("event no longer exists")
	errNoEvents  = errors.New("no events on this day")
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	before := m.Mode()
	LogKeyPress(msg, before)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch before {
	case ModeForm:
		m, cmd = m.updateForm(msg)
	case ModeConfirmDelete:
		m, cmd = m.handleConfirmKeys(msg)
	case ModeSearch:
		m, cmd = m.handleSearchKeys(msg)
	case ModeMonthPicker:
		m, cmd = m.handleMonthPickerKeys(msg)
	case ModeYearPicker:
		m, cmd = m.handleYearPickerKeys(msg)
	case ModePanel:
		m, cmd = m.handlePanelKeys(msg)
	default:
		m, cmd = m.handleGridKeys(msg)
	}

	LogModeChange(before, m.Mode(), msg.String())
	return m, cmd
}

// handleGridKeys handles keys on the month grid.
func (m Model) handleGridKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	// Navigation
	case key.Matches(msg, keys.Left):
		m.cal = m.cal.MoveSelection(-1)
	case key.Matches(msg, keys.Right):
		m.cal = m.cal.MoveSelection(1)
	case key.Matches(msg, keys.Up):
		m.cal = m.cal.MoveSelection(-7)
	case key.Matches(msg, keys.Down):
		m.cal = m.cal.MoveSelection(7)
	case key.Matches(msg, keys.PrevMonth):
		m.cal = m.cal.PrevMonth().FollowSelection()
	case key.Matches(msg, keys.NextMonth):
		m.cal = m.cal.NextMonth().FollowSelection()
	case key.Matches(msg, keys.PrevYear):
		m.cal = m.cal.PrevYear().FollowSelection()
	case key.Matches(msg, keys.NextYear):
		m.cal = m.cal.NextYear().FollowSelection()
	case key.Matches(msg, keys.Today):
		m.cal = m.cal.Today(m.now())

	// Pickers
	case key.Matches(msg, keys.Month):
		return m.openMonthPicker(), nil
	case key.Matches(msg, keys.Year):
		return m.openYearPicker()

	// Events
	case key.Matches(msg, keys.Add):
		return m.openAddForm()
	case key.Matches(msg, keys.Edit):
		id, ok := m.firstEventOfSelection()
		if !ok {
			return m.setError(errNoEvents), nil
		}
		return m.openEditForm(id)
	case key.Matches(msg, keys.Delete):
		id, ok := m.firstEventOfSelection()
		if !ok {
			return m.setError(errNoEvents), nil
		}
		m.confirmDelete = id
	case key.Matches(msg, keys.Open):
		id, ok := m.firstEventOfSelection()
		if !ok {
			return m.setError(errNoEvents), nil
		}
		m.cal = m.cal.OpenEvent(id)
	case key.Matches(msg, keys.Search):
		return m.openSearch()
	default:
		return m, nil
	}

	LogSelection(m, msg.String())
	return m, nil
}

// dayEvents returns the events of the selected day in display order.
func (m Model) dayEvents() []event.Event {
	return m.eventsOn(m.cal.Selected)
}

// eventsOn lists date's events in the order the grid and sidebar show them.
func (m Model) eventsOn(date string) []event.Event {
	return event.Aggregate(m.days.Get(date), date, m.now(), m.currentWindow())
}

func (m Model) currentWindow() time.Duration {
	if w := m.config.Calendar.CurrentWindowMinutes; w > 0 {
		return time.Duration(w) * time.Minute
	}
	return event.DefaultCurrentWindow
}

func (m Model) firstEventOfSelection() (string, bool) {
	events := m.dayEvents()
	if len(events) == 0 {
		return "", false
	}
	return events[0].ID, true
}

// handlePanelKeys handles keys while the event panel is open.
func (m Model) handlePanelKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.cal.SelectedEvent
	e, ok := m.days.Find(id)
	if !ok {
		m.cal = m.cal.CloseEvent()
		return m.setError(errEventGone), nil
	}

	switch {
	case key.Matches(msg, keys.Back), msg.String() == "q":
		m.cal = m.cal.CloseEvent()
	case key.Matches(msg, keys.NextEvent):
		_, next := event.Neighbors(m.eventsOn(e.Date), id)
		if next != nil {
			m.cal = m.cal.OpenEvent(next.ID)
		}
	case key.Matches(msg, keys.PrevEvent):
		prev, _ := event.Neighbors(m.eventsOn(e.Date), id)
		if prev != nil {
			m.cal = m.cal.OpenEvent(prev.ID)
		}
	case key.Matches(msg, keys.Copy):
		return m, commands.CopyToClipboard(eventClipboardText(e), "event")
	case key.Matches(msg, keys.Edit):
		return m.openEditForm(id)
	case key.Matches(msg, keys.Delete):
		m.confirmDelete = id
	}
	return m, nil
}

// eventClipboardText is the plain-text form of an event.
func eventClipboardText(e event.Event) string {
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString("\n")
	b.WriteString(e.Date)
	b.WriteString(" ")
	b.WriteString(e.TimeRange())
	if e.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(e.Description)
	}
	return b.String()
}

// handleConfirmKeys handles the delete confirmation.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		id := m.confirmDelete
		m.confirmDelete = ""
		return m, commands.DeleteEvent(m.store, id)
	case key.Matches(msg, keys.No):
		m.confirmDelete = ""
	}
	return m, nil
}

func (m Model) openMonthPicker() Model {
	m.cal = m.cal.OpenMonthPicker()
	m.monthCursor = m.cal.Month
	m.monthTyped = ""
	return m
}

// handleMonthPickerKeys moves over the 3×4 month grid. Letters filter the
// months by name.
func (m Model) handleMonthPickerKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.cal = m.cal.CloseMonthPicker()
		return m, nil
	case tea.KeyEnter:
		month := m.monthCursor
		if typed, ok := input.MonthAutocomplete(m.monthTyped); ok {
			month = typed
		}
		m.cal = m.cal.SelectMonth(month).FollowSelection()
		return m, nil
	case tea.KeyLeft:
		m.monthCursor = shiftMonth(m.monthCursor, -1)
	case tea.KeyRight:
		m.monthCursor = shiftMonth(m.monthCursor, 1)
	case tea.KeyUp:
		m.monthCursor = shiftMonth(m.monthCursor, -3)
	case tea.KeyDown:
		m.monthCursor = shiftMonth(m.monthCursor, 3)
	case tea.KeyBackspace:
		if m.monthTyped != "" {
			m.monthTyped = m.monthTyped[:len(m.monthTyped)-1]
		}
	case tea.KeyRunes:
		typed := m.monthTyped + string(msg.Runes)
		if matches := input.MatchingMonths(typed); len(matches) > 0 {
			m.monthTyped = typed
			m.monthCursor = matches[0]
		}
	}
	return m, nil
}

// shiftMonth moves within January..December, wrapping around.
func shiftMonth(m time.Month, delta int) time.Month {
	return time.Month((int(m)-1+delta+12)%12 + 1)
}

func (m Model) openYearPicker() (Model, tea.Cmd) {
	m.cal = m.cal.OpenYearPicker()
	m.yearInput.SetValue("")
	m.yearCursor = max(0, slices.Index(m.cal.YearRange(), m.cal.Year))
	cmd := m.yearInput.Focus()
	return m, cmd
}

// yearMatches lists the picker years that match the typed digits.
func (m Model) yearMatches() []int {
	return input.MatchingYears(m.yearInput.Value(), m.cal.YearRange())
}

// handleYearPickerKeys filters the year list as digits are typed. Enter
// takes a complete four-digit year as typed, otherwise the highlighted one.
func (m Model) handleYearPickerKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.yearInput.Blur()
		m.cal = m.cal.CloseYearPicker()
		return m, nil
	case key.Matches(msg, keys.ListUp):
		m.yearCursor = max(0, m.yearCursor-1)
		return m, nil
	case key.Matches(msg, keys.ListDown):
		m.yearCursor = min(max(0, len(m.yearMatches())-1), m.yearCursor+1)
		return m, nil
	case key.Matches(msg, keys.Select):
		typed := input.Digits(m.yearInput.Value())
		matches := m.yearMatches()
		switch {
		case len(typed) == 4 || len(matches) == 0:
			m.cal = m.cal.CommitYearInput(typed)
		default:
			m.cal = m.cal.SelectYear(matches[min(m.yearCursor, len(matches)-1)])
		}
		m.cal = m.cal.CloseYearPicker().FollowSelection()
		m.yearInput.Blur()
		return m, nil
	}

	// Only digits reach the input.
	if msg.Type == tea.KeyRunes && input.Digits(string(msg.Runes)) != string(msg.Runes) {
		return m, nil
	}
	prev := m.yearInput.Value()
	var cmd tea.Cmd
	m.yearInput, cmd = m.yearInput.Update(msg)
	if m.yearInput.Value() != prev {
		m.yearCursor = 0
	}
	return m, cmd
}

func (m Model) openSearch() (Model, tea.Cmd) {
	m.searching = true
	m.searchInput.SetValue("")
	m.searchCursor = 0
	cmd := m.searchInput.Focus()
	return m, cmd
}

func (m Model) closeSearch() Model {
	m.searching = false
	m.searchInput.Blur()
	return m
}

// searchResults runs the query typed so far.
func (m Model) searchResults() []event.Event {
	return event.Search(m.days, m.searchInput.Value())
}

// handleSearchKeys edits the query and moves over the results. Enter jumps
// to the chosen event's day and opens it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		return m.closeSearch(), nil
	case key.Matches(msg, keys.ListUp):
		m.searchCursor = max(0, m.searchCursor-1)
		return m, nil
	case key.Matches(msg, keys.ListDown):
		m.searchCursor = min(max(0, len(m.searchResults())-1), m.searchCursor+1)
		return m, nil
	case key.Matches(msg, keys.Select):
		results := m.searchResults()
		if len(results) == 0 {
			return m, nil
		}
		e := results[min(m.searchCursor, len(results)-1)]
		m = m.closeSearch()
		return m.jumpTo(e), nil
	}

	prev := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != prev {
		m.searchCursor = 0
	}
	return m, cmd
}

// jumpTo shows the month of e, selects its day and opens it.
func (m Model) jumpTo(e event.Event) Model {
	t, err := time.Parse(dateutil.ISODate, e.Date)
	if err != nil {
		return m.setError(fmt.Errorf("event %q has an invalid date", e.Title))
	}
	if t.Year() < m.cal.MinYear || t.Year() > m.cal.MaxYear {
		return m.setError(fmt.Errorf("%d is outside the calendar's years", t.Year()))
	}
	m.cal.Year, m.cal.Month = t.Year(), t.Month()
	m.cal = m.cal.SelectDate(t.Day(), 0).OpenEvent(e.ID)
	return m
}
