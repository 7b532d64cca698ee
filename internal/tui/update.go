package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/tui/commands"
)

// How long status lines stay up.
const (
	statusDuration   = 3 * time.Second
	errorDuration    = 5 * time.Second
	reminderDuration = 30 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form = m.form.WithWidth(min(formWidth, max(20, msg.Width-8)))
		}
		return m, nil

	case commands.TickMsg:
		// Nothing to update: the next View reads the clock.
		return m, commands.Tick(time.Second)

	case commands.EventSavedMsg:
		m.refresh()
		verb := "Updated"
		if msg.Created {
			verb = "Added"
		}
		m = m.setStatus(fmt.Sprintf("%s %s on %s", verb, msg.Event.Title, msg.Event.Date), statusDuration)
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.EventDeletedMsg:
		m.refresh()
		m = m.setStatus(fmt.Sprintf("Deleted %s", msg.Event.Title), statusDuration)
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.StoreChangedMsg:
		m.refresh()
		return m, commands.WaitForStoreChange(m.changes)

	case commands.ReminderMsg:
		n := msg.Notification
		text := "⏰ " + n.Title
		if n.Body != "" {
			text += " · " + n.Body
		}
		m = m.setStatus(text, reminderDuration)
		return m, tea.Batch(
			commands.WaitForReminder(m.reminders),
			commands.ClearStatusAfter(reminderDuration),
		)

	case commands.ErrMsg:
		LogError("tui command", msg.Err)
		m = m.setError(msg.Err)
		return m, commands.ClearStatusAfter(errorDuration)

	case commands.StatusMsgCmd:
		m = m.setStatus(msg.Msg, statusDuration)
		return m, commands.ClearStatusAfter(statusDuration)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Cursor blinks and other internal messages of the focused component.
	switch m.Mode() {
	case ModeForm:
		return m.updateForm(msg)
	case ModeYearPicker:
		var cmd tea.Cmd
		m.yearInput, cmd = m.yearInput.Update(msg)
		return m, cmd
	case ModeSearch:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) setStatus(text string, d time.Duration) Model {
	m.statusMsg = text
	m.statusErr = false
	m.statusTime = m.now().Add(d)
	return m
}

func (m Model) setError(err error) Model {
	m.statusMsg = "Error: " + err.Error()
	m.statusErr = true
	m.statusTime = m.now().Add(errorDuration)
	return m
}
