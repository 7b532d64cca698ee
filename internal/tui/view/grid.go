package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// GridChip is one event line inside a day cell.
type GridChip struct {
	Text  string
	Style lipgloss.Style
}

// GridCell is one day of the month grid.
type GridCell struct {
	Day      int
	InMonth  bool
	Today    bool
	Selected bool
	Chips    []GridChip
	Overflow int
}

// GridStyles are the cell styles of the month grid.
type GridStyles struct {
	Title        lipgloss.Style
	Weekday      lipgloss.Style
	WeekendDay   lipgloss.Style
	Cell         lipgloss.Style
	CellOutside  lipgloss.Style
	CellSelected lipgloss.Style
	DayNumber    lipgloss.Style
	DayToday     lipgloss.Style
	Overflow     lipgloss.Style
	Border       lipgloss.Style
}

// GridViewState holds everything needed to draw the month grid.
type GridViewState struct {
	Width    int
	Height   int
	Title    string
	Weekdays []string
	Weeks    [][]GridCell
	Styles   GridStyles
	Bg       lipgloss.Color
}

// gridChrome is the lines taken by the title, the table borders and the
// header row and its separator.
const gridChrome = 5

// GridCellSize returns the inner width and height of one day cell.
func GridCellSize(width, height, weeks int) (cellW, cellH int) {
	if weeks <= 0 {
		return 0, 0
	}
	cellW = max(3, (width-8)/7)
	cellH = max(1, (height-gridChrome)/weeks)
	return cellW, cellH
}

// RenderGrid draws the month title above a bordered 7-column table of days.
func RenderGrid(state GridViewState) string {
	if state.Width <= 0 || state.Height <= 0 {
		return ""
	}
	cellW, cellH := GridCellSize(state.Width, state.Height, len(state.Weeks))

	headers := make([]string, len(state.Weekdays))
	for i, name := range state.Weekdays {
		headers[i] = Truncate(name, cellW)
	}

	rows := make([][]string, len(state.Weeks))
	for r, week := range state.Weeks {
		rows[r] = make([]string, len(week))
		for c, cell := range week {
			rows[r][c] = cellContent(cell, cellW, cellH, state.Styles)
		}
	}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(false).
		BorderStyle(state.Styles.Border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == 0 || col == 6 {
					return state.Styles.WeekendDay.Width(cellW)
				}
				return state.Styles.Weekday.Width(cellW)
			}
			if row < 0 || row >= len(state.Weeks) || col < 0 || col >= len(state.Weeks[row]) {
				return lipgloss.NewStyle()
			}
			return cellStyle(state.Weeks[row][col], state.Styles).Width(cellW).Height(cellH)
		})

	title := state.Styles.Title.Render(state.Title)
	return PlaceBox(state.Width, state.Height, lipgloss.Top, title+"\n"+t.Render(), state.Bg)
}

func cellStyle(c GridCell, styles GridStyles) lipgloss.Style {
	switch {
	case c.Selected:
		return styles.CellSelected
	case !c.InMonth:
		return styles.CellOutside
	default:
		return styles.Cell
	}
}

// cellContent lays out the day number and as many chips as fit in h lines.
// When chips are hidden the last line becomes a "+N" marker.
func cellContent(c GridCell, w, h int, styles GridStyles) string {
	base := cellStyle(c, styles)
	dayStyle := styles.DayNumber.Inherit(base)
	if c.Today {
		dayStyle = styles.DayToday
	}
	lines := []string{dayStyle.Render(fmt.Sprintf("%2d", c.Day))}

	room := h - 1
	chips := c.Chips
	overflow := c.Overflow
	if len(chips) > room {
		overflow += len(chips) - max(0, room)
		chips = chips[:max(0, room)]
	}
	if overflow > 0 && room > 0 && len(chips) == room {
		overflow++
		chips = chips[:room-1]
	}
	for _, chip := range chips {
		lines = append(lines, chip.Style.Width(w).MaxWidth(w).Render(Truncate(chip.Text, w)))
	}
	if overflow > 0 && len(lines) < h {
		lines = append(lines, styles.Overflow.Inherit(base).Render(fmt.Sprintf("+%d", overflow)))
	}
	return strings.Join(lines, "\n")
}
