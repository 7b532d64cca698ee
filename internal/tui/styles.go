package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/almanac/internal/tui/theme"
	"github.com/javiermolinar/almanac/internal/tui/view"
)

// Width of the sidebar column, and the terminal width below which it is hidden.
const (
	sidebarWidth    = 32
	sidebarMinTotal = 90
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorToday       lipgloss.Color
	colorCurrent     lipgloss.Color
	colorWeekend     lipgloss.Color
	colorWarning     lipgloss.Color

	AppStyle lipgloss.Style

	// Month grid
	TitleStyle        lipgloss.Style
	WeekdayStyle      lipgloss.Style
	WeekendStyle      lipgloss.Style
	CellStyle         lipgloss.Style
	CellOutsideStyle  lipgloss.Style
	CellSelectedStyle lipgloss.Style
	DayNumberStyle    lipgloss.Style
	DayTodayStyle     lipgloss.Style
	OverflowStyle     lipgloss.Style
	BorderStyle       lipgloss.Style

	// Sidebar
	SidebarStyle      lipgloss.Style
	ClockStyle        lipgloss.Style
	SidebarDateStyle  lipgloss.Style
	SectionStyle      lipgloss.Style
	WhenStyle         lipgloss.Style
	EventTitleStyle   lipgloss.Style
	CurrentEventStyle lipgloss.Style
	EmptyListStyle    lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalBackdropColor     lipgloss.Color
	ModalHeaderStyle       lipgloss.Style
	ModalFooterStyle       lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalLabelStyle        lipgloss.Style
	ModalWarningStyle      lipgloss.Style
	ModalInputTextStyle    lipgloss.Style
	ModalInputCursorStyle  lipgloss.Style
	ModalPlaceholderStyle  lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style

	// Picker and search rows
	PickerItemStyle     lipgloss.Style
	PickerCursorStyle   lipgloss.Style
	PickerCurrentStyle  lipgloss.Style
	PickerDisabledStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{palette: palette}

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorToday = palette.Today
	s.colorCurrent = palette.Current
	s.colorWeekend = palette.Weekend
	s.colorWarning = palette.Warning

	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg).
		Foreground(s.colorFg)

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Padding(0, 1)

	s.WeekdayStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg)

	s.WeekendStyle = s.WeekdayStyle.
		Foreground(s.colorWeekend)

	s.CellStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	// Days of the neighbouring months
	s.CellOutsideStyle = s.CellStyle.
		Foreground(s.colorFgMuted)

	s.CellSelectedStyle = s.CellStyle.
		Background(s.colorBgSelection)

	s.DayNumberStyle = lipgloss.NewStyle().Bold(true)

	s.DayTodayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnToday).
		Background(s.colorToday)

	s.OverflowStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Italic(true)

	s.BorderStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.SidebarStyle = lipgloss.NewStyle().
		Background(s.colorBgHighlight).
		Foreground(s.colorFg).
		Padding(0, 1)

	s.ClockStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBgHighlight)

	s.SidebarDateStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.SectionStyle = lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.WhenStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.EventTitleStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBgHighlight)

	s.CurrentEventStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.TextOnCurrent).
		Background(s.colorCurrent)

	s.EmptyListStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(s.colorFgMuted).
		Background(s.colorBgHighlight)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Bold(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	modalBg := modal.Bg
	s.ModalBackdropColor = modal.Backdrop
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modalBg).
		Foreground(modal.Text).
		Padding(1, 2).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Bold(true).
		Width(10).
		Background(modalBg)

	s.ModalWarningStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(modalBg).
		Bold(true)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(modal.Highlight)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Panel).
		Padding(0, 1)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnWarning).
		Background(s.colorWarning).
		Bold(true).
		Padding(0, 1)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg).
		Italic(true)

	s.PickerItemStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modalBg)

	s.PickerCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(s.colorAccent).
		Bold(true)

	s.PickerCurrentStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(modalBg).
		Bold(true)

	s.PickerDisabledStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modalBg).
		Faint(true)

	return s
}

// GridStyles returns the month grid styles.
func (s *Styles) GridStyles() view.GridStyles {
	return view.GridStyles{
		Title:        s.TitleStyle,
		Weekday:      s.WeekdayStyle,
		WeekendDay:   s.WeekendStyle,
		Cell:         s.CellStyle,
		CellOutside:  s.CellOutsideStyle,
		CellSelected: s.CellSelectedStyle,
		DayNumber:    s.DayNumberStyle,
		DayToday:     s.DayTodayStyle,
		Overflow:     s.OverflowStyle,
		Border:       s.BorderStyle,
	}
}

// SidebarStyles returns the sidebar styles.
func (s *Styles) SidebarStyles() view.SidebarStyles {
	return view.SidebarStyles{
		Box:     s.SidebarStyle,
		Clock:   s.ClockStyle,
		Date:    s.SidebarDateStyle,
		Section: s.SectionStyle,
		When:    s.WhenStyle,
		Title:   s.EventTitleStyle,
		Current: s.CurrentEventStyle,
		Empty:   s.EmptyListStyle,
	}
}

// ModalStyles returns the modal frame styles.
func (s *Styles) ModalStyles() view.ModalStyles {
	return view.ModalStyles{
		ModalHeaderStyle:       s.ModalHeaderStyle,
		ModalTitleStyle:        s.ModalTitleStyle,
		ModalFooterStyle:       s.ModalFooterStyle,
		ModalStyle:             s.ModalStyle,
		ModalButtonStyle:       s.ModalButtonStyle,
		ModalButtonActiveStyle: s.ModalButtonActiveStyle,
		ModalBodyStyle:         s.ModalBodyStyle,
		ModalLabelStyle:        s.ModalLabelStyle,
		ModalMetaStyle:         s.ModalMetaStyle,
		ModalWarningStyle:      s.ModalWarningStyle,
	}
}

// PickerStyles returns the month and year picker styles.
func (s *Styles) PickerStyles() view.PickerStyles {
	return view.PickerStyles{
		Item:     s.PickerItemStyle,
		Cursor:   s.PickerCursorStyle,
		Current:  s.PickerCurrentStyle,
		Disabled: s.PickerDisabledStyle,
		Hint:     s.ModalHintStyle,
	}
}

// SearchStyles returns the search result styles.
func (s *Styles) SearchStyles() view.SearchStyles {
	return view.SearchStyles{
		Item:   s.PickerItemStyle,
		Cursor: s.PickerCursorStyle,
		When:   s.ModalMetaStyle,
		Hint:   s.ModalHintStyle,
	}
}

// EventChipStyle colours an event line in the grid.
func (s *Styles) EventChipStyle(hex string, past, selected bool) lipgloss.Style {
	chip := s.palette.EventChip(hex, past)
	if selected {
		chip = s.palette.SelectedChip(hex)
	}
	return lipgloss.NewStyle().Background(chip.Bg).Foreground(chip.Fg)
}

// EventMarker is a dot in the event's colour.
func (s *Styles) EventMarker(hex string, bg lipgloss.Color) string {
	return lipgloss.NewStyle().
		Foreground(s.palette.EventAccent(hex)).
		Background(bg).
		Render("●")
}
