package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SearchStyles are the styles of the search view.
type SearchStyles struct {
	Item   lipgloss.Style
	Cursor lipgloss.Style
	When   lipgloss.Style
	Hint   lipgloss.Style
}

// SearchViewState is the search modal body.
type SearchViewState struct {
	Input   string // rendered text input
	Results []ListItem
	Cursor  int
	Visible int
	Width   int
	Styles  SearchStyles
}

// RenderSearch shows the query input and the matching events.
func RenderSearch(state SearchViewState) string {
	rows := []string{state.Input, ""}
	if len(state.Results) == 0 {
		rows = append(rows, state.Styles.Hint.Render("No events match."))
		return strings.Join(rows, "\n")
	}

	visible := state.Visible
	if visible <= 0 {
		visible = len(state.Results)
	}
	start := 0
	if state.Cursor >= visible {
		start = state.Cursor - visible + 1
	}
	end := min(len(state.Results), start+visible)
	whenW := 26
	titleW := max(8, state.Width-whenW-4)

	for i := start; i < end; i++ {
		r := state.Results[i]
		style := state.Styles.Item
		if i == state.Cursor {
			style = state.Styles.Cursor
		}
		line := fmt.Sprintf("%-*s %s", whenW, Truncate(r.When, whenW), Truncate(r.Title, titleW))
		rows = append(rows, r.Marker+" "+style.Render(line))
	}
	rows = append(rows, "", state.Styles.Hint.Render(fmt.Sprintf("%d of %d", state.Cursor+1, len(state.Results))))
	return strings.Join(rows, "\n")
}
