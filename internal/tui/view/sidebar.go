package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListItem is one event line in the sidebar, search results or panel.
type ListItem struct {
	Marker  string // pre-rendered coloured dot
	When    string
	Title   string
	Current bool
}

// SidebarStyles are the styles used by the sidebar.
type SidebarStyles struct {
	Box     lipgloss.Style
	Clock   lipgloss.Style
	Date    lipgloss.Style
	Section lipgloss.Style
	When    lipgloss.Style
	Title   lipgloss.Style
	Current lipgloss.Style
	Empty   lipgloss.Style
}

// SidebarViewState holds the clock, the upcoming list and the selected day.
type SidebarViewState struct {
	Width     int
	Height    int
	Clock     string
	Date      string
	Upcoming  []ListItem
	DayTitle  string
	DayEvents []ListItem
	Styles    SidebarStyles
	Bg        lipgloss.Color
}

// RenderSidebar draws the sidebar column.
func RenderSidebar(state SidebarViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return ""
	}
	s := state.Styles
	inner := max(1, state.Width-s.Box.GetHorizontalFrameSize())

	lines := []string{
		s.Clock.Render(state.Clock),
		s.Date.Render(state.Date),
		"",
		s.Section.Render("Upcoming"),
	}
	lines = append(lines, renderItems(state.Upcoming, inner, s, "Nothing coming up")...)
	lines = append(lines, "", s.Section.Render(Truncate(state.DayTitle, inner)))
	lines = append(lines, renderItems(state.DayEvents, inner, s, "No events")...)

	content := s.Box.Width(state.Width).Render(strings.Join(lines, "\n"))
	return PlaceBox(state.Width, state.Height, lipgloss.Top, content, state.Bg)
}

func renderItems(items []ListItem, width int, s SidebarStyles, empty string) []string {
	if len(items) == 0 {
		return []string{s.Empty.Render(empty)}
	}
	out := make([]string, 0, len(items)*2)
	for _, it := range items {
		title := s.Title
		if it.Current {
			title = s.Current
		}
		out = append(out,
			it.Marker+" "+title.Render(Truncate(it.Title, width-2)),
			"  "+s.When.Render(Truncate(it.When, width-2)),
		)
	}
	return out
}
