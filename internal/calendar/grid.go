// Package calendar builds month grids and holds the navigation state of the
// calendar view.
package calendar

import (
	"time"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

const (
	weekdays  = 7
	gridCells = 35
)

// Cell is one square of a month grid. MonthOffset is -1 for a trailing day of
// the previous month, 0 for the displayed month and 1 for the next month.
type Cell struct {
	Day         int
	MonthOffset int
}

// Current reports whether the cell belongs to the displayed month.
func (c Cell) Current() bool {
	return c.MonthOffset == 0
}

// Date resolves the cell to a date in the grid of (year, month).
func (c Cell) Date(year int, month time.Month, loc *time.Location) time.Time {
	y, m := dateutil.AddMonths(year, month, c.MonthOffset)
	return time.Date(y, m, c.Day, 0, 0, 0, 0, loc)
}

// Key returns the ISO date of the cell in the grid of (year, month).
func (c Cell) Key(year int, month time.Month) string {
	return dateutil.FormatISO(c.Date(year, month, time.UTC))
}

// BuildGrid lays out a month as whole Sunday-first weeks. The grid is 35
// cells, or 42 when the month does not fit in five weeks.
func BuildGrid(year int, month time.Month) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())
	days := dateutil.DaysInMonth(year, month)

	size := gridCells
	if lead+days > gridCells {
		size = gridCells + weekdays
	}
	cells := make([]Cell, 0, size)

	py, pm := dateutil.AddMonths(year, month, -1)
	prevDays := dateutil.DaysInMonth(py, pm)
	for i := lead - 1; i >= 0; i-- {
		cells = append(cells, Cell{Day: prevDays - i, MonthOffset: -1})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{Day: d})
	}
	for d := 1; len(cells) < size; d++ {
		cells = append(cells, Cell{Day: d, MonthOffset: 1})
	}
	return cells
}

// Weeks splits a grid into rows of seven.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for i := 0; i < len(cells); i += weekdays {
		rows = append(rows, cells[i:min(i+weekdays, len(cells))])
	}
	return rows
}

// IndexOf returns the grid index holding date, or -1.
func IndexOf(cells []Cell, year int, month time.Month, date string) int {
	for i, c := range cells {
		if c.Key(year, month) == date {
			return i
		}
	}
	return -1
}
