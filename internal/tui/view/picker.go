package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// PickerStyles are the styles of the month and year pickers.
type PickerStyles struct {
	Item     lipgloss.Style
	Cursor   lipgloss.Style
	Current  lipgloss.Style
	Disabled lipgloss.Style
	Hint     lipgloss.Style
}

// MonthPickerState is the month picker body.
type MonthPickerState struct {
	Cursor  time.Month
	Current time.Month
	Typed   string
	Matches []time.Month
	Styles  PickerStyles
}

// RenderMonthPicker lays the twelve months out in a 3×4 grid. Months that
// do not match what has been typed are dimmed.
func RenderMonthPicker(state MonthPickerState) string {
	match := make(map[time.Month]bool, len(state.Matches))
	for _, m := range state.Matches {
		match[m] = true
	}

	var rows []string
	for row := 0; row < 4; row++ {
		cells := make([]string, 0, 3)
		for col := 0; col < 3; col++ {
			m := time.Month(row*3 + col + 1)
			style := state.Styles.Item
			switch {
			case m == state.Cursor:
				style = state.Styles.Cursor
			case !match[m]:
				style = state.Styles.Disabled
			case m == state.Current:
				style = state.Styles.Current
			}
			cells = append(cells, style.Width(11).Render(" "+m.String()[:3]))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	hint := "type to filter · arrows move · enter selects"
	if state.Typed != "" {
		hint = "filter: " + state.Typed
	}
	rows = append(rows, "", state.Styles.Hint.Render(hint))
	return strings.Join(rows, "\n")
}

// YearPickerState is the year picker body.
type YearPickerState struct {
	Input   string // rendered text input
	Years   []int
	Cursor  int
	Current int
	Visible int
	Styles  PickerStyles
}

// RenderYearPicker shows the text input above a scrolling list of years.
func RenderYearPicker(state YearPickerState) string {
	rows := []string{state.Input, ""}
	if len(state.Years) == 0 {
		rows = append(rows, state.Styles.Hint.Render("no matching year, enter jumps to the typed year"))
		return strings.Join(rows, "\n")
	}

	visible := state.Visible
	if visible <= 0 {
		visible = len(state.Years)
	}
	start := 0
	if state.Cursor >= visible {
		start = state.Cursor - visible + 1
	}
	end := min(len(state.Years), start+visible)

	for i := start; i < end; i++ {
		y := state.Years[i]
		style := state.Styles.Item
		switch {
		case i == state.Cursor:
			style = state.Styles.Cursor
		case y == state.Current:
			style = state.Styles.Current
		}
		rows = append(rows, style.Width(8).Render(" "+strconv.Itoa(y)))
	}
	return strings.Join(rows, "\n")
}
