package calendar

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/javiermolinar/almanac/internal/dateutil"
)

// yearSpan is how many years either side of the current one the year picker lists.
const yearSpan = 10

// FormKind says which event form, if any, is open.
type FormKind int

const (
	FormClosed FormKind = iota
	FormAdd
	FormEdit
)

// State is the navigation and selection state of the calendar view.
// Every transition returns a new State and leaves the receiver unchanged.
type State struct {
	Year     int
	Month    time.Month
	Selected string

	// SelectedEvent is the ID shown in the event panel, empty when closed.
	SelectedEvent string

	MonthPicker bool
	YearPicker  bool

	Form      FormKind
	FormEvent string

	MinYear int
	MaxYear int
}

// New returns a state showing the month of now with today selected.
func New(now time.Time) State {
	return State{
		Year:     now.Year(),
		Month:    now.Month(),
		Selected: dateutil.FormatISO(now),
		MinYear:  dateutil.MinYear,
		MaxYear:  dateutil.MaxYear,
	}
}

// WithYearBounds narrows the navigable years. Zero values keep the defaults.
func (s State) WithYearBounds(minYear, maxYear int) State {
	if minYear > 0 {
		s.MinYear = minYear
	}
	if maxYear > 0 {
		s.MaxYear = maxYear
	}
	s.Year = s.clampYear(s.Year)
	return s
}

func (s State) clampYear(y int) int {
	lo, hi := s.MinYear, s.MaxYear
	if lo == 0 {
		lo = dateutil.MinYear
	}
	if hi == 0 {
		hi = dateutil.MaxYear
	}
	return max(lo, min(hi, y))
}

func (s State) inBounds(y int) bool {
	return s.clampYear(y) == y
}

// Grid returns the cells of the displayed month.
func (s State) Grid() []Cell {
	return BuildGrid(s.Year, s.Month)
}

// PrevMonth shows the previous month, rolling the year back from January.
// It stops at the lower year bound.
func (s State) PrevMonth() State {
	return s.shiftMonth(-1)
}

// NextMonth shows the next month, rolling the year over from December.
// It stops at the upper year bound.
func (s State) NextMonth() State {
	return s.shiftMonth(1)
}

func (s State) shiftMonth(delta int) State {
	y, m := dateutil.AddMonths(s.Year, s.Month, delta)
	if !s.inBounds(y) {
		return s
	}
	s.Year, s.Month = y, m
	return s
}

// PrevYear shows the same month one year earlier, clamped to the bounds.
func (s State) PrevYear() State {
	s.Year = s.clampYear(s.Year - 1)
	return s
}

// NextYear shows the same month one year later, clamped to the bounds.
func (s State) NextYear() State {
	s.Year = s.clampYear(s.Year + 1)
	return s
}

// SelectDate selects a grid cell. Cells of an adjacent month move the view
// to that month first.
func (s State) SelectDate(day, monthOffset int) State {
	if monthOffset != 0 {
		y, m := dateutil.AddMonths(s.Year, s.Month, monthOffset)
		if !s.inBounds(y) {
			return s
		}
		s.Year, s.Month = y, m
	}
	day = max(1, min(dateutil.DaysInMonth(s.Year, s.Month), day))
	s.Selected = dateutil.FormatISO(time.Date(s.Year, s.Month, day, 0, 0, 0, 0, time.UTC))
	return s
}

// SelectedDay returns the day of month of the selection if it lies in the
// displayed month, otherwise 0.
func (s State) SelectedDay() int {
	t, err := time.Parse(dateutil.ISODate, s.Selected)
	if err != nil || t.Year() != s.Year || t.Month() != s.Month {
		return 0
	}
	return t.Day()
}

// MoveSelection moves the selection by days, following it into adjacent months.
func (s State) MoveSelection(days int) State {
	t, err := time.Parse(dateutil.ISODate, s.Selected)
	if err != nil {
		t = time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC)
	}
	t = t.AddDate(0, 0, days)
	if !s.inBounds(t.Year()) {
		return s
	}
	s.Year, s.Month = t.Year(), t.Month()
	s.Selected = dateutil.FormatISO(t)
	return s
}

// Today shows the month of now and selects today.
func (s State) Today(now time.Time) State {
	if !s.inBounds(now.Year()) {
		return s
	}
	s.Year, s.Month = now.Year(), now.Month()
	s.Selected = dateutil.FormatISO(now)
	return s
}

// FollowSelection moves the selection into the displayed month, keeping the
// day of month where possible.
func (s State) FollowSelection() State {
	if s.SelectedDay() != 0 {
		return s
	}
	day := 1
	if t, err := time.Parse(dateutil.ISODate, s.Selected); err == nil {
		day = t.Day()
	}
	return s.SelectDate(day, 0)
}

func (s State) OpenMonthPicker() State {
	s.MonthPicker = true
	return s
}

func (s State) CloseMonthPicker() State {
	s.MonthPicker = false
	return s
}

func (s State) OpenYearPicker() State {
	s.YearPicker = true
	return s
}

func (s State) CloseYearPicker() State {
	s.YearPicker = false
	return s
}

// SelectMonth shows month m of the current year and closes the month picker.
func (s State) SelectMonth(m time.Month) State {
	s.Month = max(time.January, min(time.December, m))
	s.MonthPicker = false
	return s
}

// SelectYear shows year y, clamped, and closes the year picker.
func (s State) SelectYear(y int) State {
	s.Year = s.clampYear(y)
	s.YearPicker = false
	return s
}

// CommitYearInput applies free-text year input. Non-digits are dropped and
// input with no digits is ignored.
func (s State) CommitYearInput(input string) State {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, input)
	if digits == "" {
		return s
	}
	y, err := strconv.Atoi(digits)
	if err != nil {
		// Too many digits for an int.
		y = s.MaxYear
	}
	return s.SelectYear(y)
}

// YearRange lists the years offered by the year picker.
func (s State) YearRange() []int {
	lo := s.clampYear(s.Year - yearSpan)
	hi := s.clampYear(s.Year + yearSpan)
	years := make([]int, 0, hi-lo+1)
	for y := lo; y <= hi; y++ {
		years = append(years, y)
	}
	return years
}

// OpenEvent shows the event panel for id.
func (s State) OpenEvent(id string) State {
	s.SelectedEvent = id
	return s
}

func (s State) CloseEvent() State {
	s.SelectedEvent = ""
	return s
}

// OpenAddForm opens an empty form for the selected date.
func (s State) OpenAddForm() State {
	s.Form = FormAdd
	s.FormEvent = ""
	return s
}

// OpenEditForm opens the form prefilled with event id.
func (s State) OpenEditForm(id string) State {
	s.Form = FormEdit
	s.FormEvent = id
	return s
}

func (s State) CloseForm() State {
	s.Form = FormClosed
	s.FormEvent = ""
	return s
}
