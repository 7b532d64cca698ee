// Package tui provides the terminal user interface for almanac.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/calendar"
	"github.com/javiermolinar/almanac/internal/clock"
	"github.com/javiermolinar/almanac/internal/config"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/notify"
	"github.com/javiermolinar/almanac/internal/reminder"
	"github.com/javiermolinar/almanac/internal/store"
	"github.com/javiermolinar/almanac/internal/tui/commands"
	"github.com/javiermolinar/almanac/internal/tui/theme"
)

// Mode represents the current interaction mode. It is derived from the
// calendar state and the open overlays, never stored.
type Mode int

const (
	ModeGrid Mode = iota
	ModePanel
	ModeForm
	ModeMonthPicker
	ModeYearPicker
	ModeSearch
	ModeConfirmDelete
)

// EventStore is what the TUI needs from the store.
type EventStore interface {
	commands.EventStore
	Snapshot() event.Days
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store  EventStore
	config *config.Config
	now    clock.Clock

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Calendar navigation and selection
	cal  calendar.State
	days event.Days

	// Add/edit form. formValues is a pointer so huh's bound fields survive
	// value copies of the model.
	form       *huh.Form
	formValues *formValues

	// Pickers
	monthCursor time.Month
	monthTyped  string
	yearInput   textinput.Model
	yearCursor  int

	// Search
	searching    bool
	searchInput  textinput.Model
	searchCursor int

	// Delete confirmation, the ID of the event to delete
	confirmDelete string

	// Background sources
	reminders <-chan notify.Notification
	changes   <-chan struct{}

	overlay OverlayModel

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) ModelOption {
	return func(m *Model) {
		m.now = c
	}
}

// WithReminders delivers fired reminders from ch into the status line.
func WithReminders(ch <-chan notify.Notification) ModelOption {
	return func(m *Model) {
		m.reminders = ch
	}
}

// WithStoreChanges re-reads the store whenever ch signals.
func WithStoreChanges(ch <-chan struct{}) ModelOption {
	return func(m *Model) {
		m.changes = ch
	}
}

// New creates a new TUI model.
func New(st EventStore, cfg *config.Config, opts ...ModelOption) Model {
	t, err := theme.LoadOrDefault(cfg.UI.Theme)
	if err != nil {
		applog.Error("loading theme", err, "theme", cfg.UI.Theme)
	}
	styles := NewStyles(t)

	m := Model{
		store:      st,
		config:     cfg,
		now:        clock.System,
		theme:      t,
		styles:     styles,
		formValues: &formValues{},
		overlay:    NewOverlayModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.cal = calendar.New(m.now()).WithYearBounds(cfg.Calendar.MinYear, cfg.Calendar.MaxYear)
	m.days = st.Snapshot()

	m.yearInput = newInput("Year", 4, styles)
	m.searchInput = newInput("Search title, description or date", 64, styles)
	return m
}

func newInput(placeholder string, limit int, styles *Styles) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "> "
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = styles.ModalInputTextStyle
	return ti
}

// Init starts the clock tick and the background listeners.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{commands.Tick(time.Second)}
	if m.reminders != nil {
		cmds = append(cmds, commands.WaitForReminder(m.reminders))
	}
	if m.changes != nil {
		cmds = append(cmds, commands.WaitForStoreChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// Mode returns the current interaction mode.
func (m Model) Mode() Mode {
	switch {
	case m.confirmDelete != "":
		return ModeConfirmDelete
	case m.cal.Form != calendar.FormClosed:
		return ModeForm
	case m.searching:
		return ModeSearch
	case m.cal.MonthPicker:
		return ModeMonthPicker
	case m.cal.YearPicker:
		return ModeYearPicker
	case m.cal.SelectedEvent != "":
		return ModePanel
	default:
		return ModeGrid
	}
}

// location is the zone events are interpreted in.
func (m Model) location() *time.Location {
	return m.now().Location()
}

// refresh re-reads the store and drops references to events that are gone.
func (m *Model) refresh() {
	m.days = m.store.Snapshot()
	if id := m.cal.SelectedEvent; id != "" {
		if _, ok := m.days.Find(id); !ok {
			m.cal = m.cal.CloseEvent()
		}
	}
	if id := m.confirmDelete; id != "" {
		if _, ok := m.days.Find(id); !ok {
			m.confirmDelete = ""
		}
	}
}

// channelSink hands notifications to the UI loop.
type channelSink chan notify.Notification

func (c channelSink) Available() bool { return true }

func (c channelSink) Notify(ctx context.Context, n notify.Notification) error {
	select {
	case c <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the TUI. While it is open the reminder scheduler runs and the
// store is re-read on the resync schedule.
func Run(st *store.Store, cfg *config.Config) error {
	changes := make(chan struct{}, 1)
	st.OnChange(func(store.Change) {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	opts := []ModelOption{WithStoreChanges(changes)}

	if cfg.Reminders.Enabled {
		reminders := make(chan notify.Notification, 8)
		sinks := notify.Multi{channelSink(reminders)}
		if cfg.HasTelegram() {
			sinks = append(sinks, notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sched := reminder.New(sinks)
		defer sched.Stop()
		sched.Attach(st)
		reload := func(ctx context.Context) error {
			_, err := st.Reload(ctx)
			return err
		}
		if err := sched.StartResync(ctx, cfg.Reminders.Resync, reload); err != nil {
			return err
		}
		applog.Info("tui reminders armed", "count", sched.Len())
		opts = append(opts, WithReminders(reminders))
	}

	p := tea.NewProgram(New(st, cfg, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
