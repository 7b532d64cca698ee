package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/tui/input"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Smallest terminal the layout works in.
const (
	minWidth  = 40
	minHeight = 14
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// View renders the TUI.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		EmptyPlaceholder: "Loading...",
		MinWidth:         minWidth,
		MinHeight:        minHeight,
	}
	if m.width < minWidth || m.height < minHeight {
		return state
	}

	m.overlay.SetBackground(m.styles.ModalBgColor)
	state.BaseContent = m.renderAppContent()
	state.ModalContent = m.renderModal()
	state.ShowModal = state.ModalContent != ""
	state.Overlay = m.overlay
	return state
}

func (m Model) renderAppContent() string {
	bodyH := m.height - view.FooterHeight
	sideW := 0
	if m.width >= sidebarMinTotal {
		sideW = sidebarWidth
	}
	gridW := m.width - sideW

	body := view.RenderGrid(m.gridViewState(gridW, bodyH))
	if sideW > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, view.RenderSidebar(m.sidebarViewState(sideW, bodyH)))
	}

	footer := view.RenderFooter(m.footerViewState())
	content := lipgloss.JoinVertical(lipgloss.Left, body, footer)
	return view.PadLinesWithBackground(m.styles.AppStyle.Render(content), m.width, m.height, m.styles.colorBg)
}

func (m Model) gridViewState(width, height int) view.GridViewState {
	now := m.now()
	today := dateutil.FormatISO(now)
	perCell := max(1, m.config.Calendar.EventsPerCell)
	loc := m.location()

	cells := m.cal.Grid()
	weeks := calendar.Weeks(cells)
	out := make([][]view.GridCell, len(weeks))
	for w, week := range weeks {
		out[w] = make([]view.GridCell, len(week))
		for d, c := range week {
			date := c.Key(m.cal.Year, m.cal.Month)
			events := event.Aggregate(m.days.Get(date), date, now, m.currentWindow())
			shown, _ := event.Page(events, 0, perCell)
			selected := date == m.cal.Selected

			chips := make([]view.GridChip, len(shown))
			for i, e := range shown {
				chips[i] = view.GridChip{
					Text:  chipText(e),
					Style: m.styles.EventChipStyle(e.Color, isPast(e, now, loc), selected),
				}
			}
			out[w][d] = view.GridCell{
				Day:      c.Day,
				InMonth:  c.Current(),
				Today:    date == today,
				Selected: selected,
				Chips:    chips,
				Overflow: len(events) - len(shown),
			}
		}
	}

	return view.GridViewState{
		Width:    width,
		Height:   height,
		Title:    fmt.Sprintf("%s %d", m.cal.Month, m.cal.Year),
		Weekdays: weekdayNames,
		Weeks:    out,
		Styles:   m.styles.GridStyles(),
		Bg:       m.styles.colorBg,
	}
}

// chipText is the one-line label of an event in a grid cell.
func chipText(e event.Event) string {
	if !e.HasTime() {
		return e.Title
	}
	// "9:00 AM" -> "9a", "9:30 PM" -> "9:30p"
	short := strings.Replace(e.Time, ":00 ", " ", 1)
	short = strings.NewReplacer(" AM", "a", " PM", "p").Replace(short)
	return short + " " + e.Title
}

// isPast reports whether e has ended, or started for events without an end.
func isPast(e event.Event, now time.Time, loc *time.Location) bool {
	start, end, ok := e.Span(loc)
	if !ok {
		day, err := time.ParseInLocation(dateutil.ISODate, e.Date, loc)
		return err == nil && !day.AddDate(0, 0, 1).After(now)
	}
	if end.IsZero() {
		end = start
	}
	return end.Before(now)
}

func (m Model) sidebarViewState(width, height int) view.SidebarViewState {
	now := m.now()
	limit := m.config.Calendar.UpcomingLimit
	if limit <= 0 {
		limit = event.DefaultUpcomingLimit
	}
	marker := func(e event.Event) string {
		return m.styles.EventMarker(e.Color, m.styles.colorBgHighlight)
	}

	upcoming := event.Upcoming(m.days, now, limit)
	upItems := make([]view.ListItem, len(upcoming))
	for i, e := range upcoming {
		upItems[i] = view.ListItem{Marker: marker(e), When: upcomingWhen(e, now), Title: e.Title}
	}

	dayEvents := m.dayEvents()
	current := event.CurrentIndex(dayEvents, m.cal.Selected, now, m.currentWindow())
	dayItems := make([]view.ListItem, len(dayEvents))
	for i, e := range dayEvents {
		dayItems[i] = view.ListItem{Marker: marker(e), When: e.TimeRange(), Title: e.Title, Current: i == current}
	}

	return view.SidebarViewState{
		Width:     width,
		Height:    height,
		Clock:     now.Format("3:04:05 PM"),
		Date:      now.Format("Monday, January 2"),
		Upcoming:  upItems,
		DayTitle:  dayHeading(m.cal.Selected),
		DayEvents: dayItems,
		Styles:    m.styles.SidebarStyles(),
		Bg:        m.styles.colorBgHighlight,
	}
}

// upcomingWhen labels an upcoming event relative to today.
func upcomingWhen(e event.Event, now time.Time) string {
	switch e.Date {
	case dateutil.FormatISO(now):
		return "Today · " + e.TimeRange()
	case dateutil.FormatISO(now.AddDate(0, 0, 1)):
		return "Tomorrow · " + e.TimeRange()
	}
	return dayHeading(e.Date) + " · " + e.TimeRange()
}

func dayHeading(date string) string {
	t, err := time.Parse(dateutil.ISODate, date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2 2006")
}

func (m Model) footerViewState() view.FooterViewState {
	status := m.statusMsg
	statusStyle := m.styles.StatusStyle
	if m.statusErr {
		statusStyle = m.styles.ErrorStyle
	}
	if status == "" {
		status = fmt.Sprintf("%d events", m.days.Len())
		statusStyle = m.styles.HelpStyle
	}
	return view.FooterViewState{
		InnerW:      m.width,
		StatusLine:  status,
		HelpLine:    m.helpText(),
		StatusStyle: statusStyle,
		HelpStyle:   m.styles.HelpStyle,
		Bg:          m.styles.colorBg,
	}
}

func (m Model) helpText() string {
	switch m.Mode() {
	case ModePanel:
		return helpLine(keys.NextEvent, keys.Copy, keys.Edit, keys.Delete, keys.Back)
	case ModeForm:
		return "tab next field  enter submit  esc cancel"
	case ModeMonthPicker:
		return "type a month  arrows move  enter select  esc close"
	case ModeYearPicker, ModeSearch:
		return helpLine(keys.ListUp, keys.Select, keys.Back)
	case ModeConfirmDelete:
		return helpLine(keys.Yes, keys.No)
	}
	return helpLine(keys.Left, keys.Up, keys.PrevMonth, keys.PrevYear, keys.Today,
		keys.Month, keys.Year, keys.Add, keys.Edit, keys.Delete, keys.Open, keys.Search, keys.Quit)
}

// renderModal renders the overlay for the current mode, or "" for none.
func (m Model) renderModal() string {
	styles := m.styles.ModalStyles()
	switch m.Mode() {
	case ModeForm:
		title := "New event"
		if m.cal.Form == calendar.FormEdit {
			title = "Edit event"
		}
		return view.RenderModalFrame(title, m.form.View(), "", styles)

	case ModeConfirmDelete:
		e, _ := m.days.Find(m.confirmDelete)
		body := view.RenderConfirm(styles, "Delete this event?", e.Title+" · "+dayHeading(e.Date))
		buttons := view.RenderModalButtons(styles, "[y] Delete", "[n] Cancel")
		return view.RenderModalFrame("Confirm", body, buttons, styles)

	case ModePanel:
		e, ok := m.days.Find(m.cal.SelectedEvent)
		if !ok {
			return ""
		}
		return view.RenderModalFrame("Event", view.RenderEventPanel(m.eventDetail(e), styles), helpLine(keys.NextEvent, keys.Copy, keys.Back), styles)

	case ModeMonthPicker:
		body := view.RenderMonthPicker(view.MonthPickerState{
			Cursor:  m.monthCursor,
			Current: m.cal.Month,
			Typed:   m.monthTyped,
			Matches: m.monthMatches(),
			Styles:  m.styles.PickerStyles(),
		})
		return view.RenderModalFrame(fmt.Sprintf("Month · %d", m.cal.Year), body, "", styles)

	case ModeYearPicker:
		body := view.RenderYearPicker(view.YearPickerState{
			Input:   m.yearInput.View(),
			Years:   m.yearMatches(),
			Cursor:  m.yearCursor,
			Current: m.cal.Year,
			Visible: max(3, m.height/2-6),
			Styles:  m.styles.PickerStyles(),
		})
		return view.RenderModalFrame("Year", body, "", styles)

	case ModeSearch:
		results := m.searchResults()
		items := make([]view.ListItem, len(results))
		for i, e := range results {
			items[i] = view.ListItem{
				Marker: m.styles.EventMarker(e.Color, m.styles.ModalBgColor),
				When:   e.Date + " " + e.TimeRange(),
				Title:  e.Title,
			}
		}
		body := view.RenderSearch(view.SearchViewState{
			Input:   m.searchInput.View(),
			Results: items,
			Cursor:  m.searchCursor,
			Visible: max(3, m.height/2-6),
			Width:   min(72, max(40, m.width-12)),
			Styles:  m.styles.SearchStyles(),
		})
		return view.RenderModalFrame("Search", body, "", styles)
	}
	return ""
}

func (m Model) monthMatches() []time.Month {
	if m.monthTyped == "" {
		matches := make([]time.Month, 12)
		for i := range matches {
			matches[i] = time.Month(i + 1)
		}
		return matches
	}
	return input.MatchingMonths(m.monthTyped)
}

func (m Model) eventDetail(e event.Event) view.EventDetail {
	d := view.EventDetail{
		Marker:      m.styles.EventMarker(e.Color, m.styles.ModalBgColor),
		Title:       e.Title,
		Date:        dayHeading(e.Date),
		When:        e.TimeRange(),
		Priority:    string(e.Priority),
		Color:       event.ColorName(e.Color),
		Description: e.Description,
	}
	if d.Priority == "" {
		d.Priority = "None"
	}
	if e.Reminder != nil {
		d.Reminder = reminderText(*e.Reminder)
		if !e.HasTime() {
			d.Reminder += " (needs a start time)"
		}
	}

	sorted := m.eventsOn(e.Date)
	for i, other := range sorted {
		if other.ID == e.ID && len(sorted) > 1 {
			d.Position = fmt.Sprintf("%d of %d", i+1, len(sorted))
		}
	}
	return d
}
