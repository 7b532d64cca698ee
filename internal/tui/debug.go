package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/applog"
)

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg, mode Mode) {
	if !applog.Enabled(applog.LevelDebug) {
		return
	}
	applog.Debug("key press", "key", msg.String(), "mode", mode)
}

// LogModeChange logs a mode change.
func LogModeChange(from, to Mode, reason string) {
	if from == to {
		return
	}
	applog.Debug("mode change", "from", from, "to", to, "reason", reason)
}

// LogSelection logs where the grid cursor landed.
func LogSelection(m Model, reason string) {
	if !applog.Enabled(applog.LevelDebug) {
		return
	}
	applog.Debug("selection",
		"year", m.cal.Year,
		"month", m.cal.Month,
		"selected", m.cal.Selected,
		"events", len(m.days.Get(m.cal.Selected)),
		"reason", reason,
	)
}

// LogError logs an error.
func LogError(context string, err error) {
	applog.Error(context, err)
}

func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return "Grid"
	case ModePanel:
		return "Panel"
	case ModeForm:
		return "Form"
	case ModeMonthPicker:
		return "MonthPicker"
	case ModeYearPicker:
		return "YearPicker"
	case ModeSearch:
		return "Search"
	case ModeConfirmDelete:
		return "ConfirmDelete"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}
