// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/notify"
)

// saveTimeout bounds a single store write.
const saveTimeout = 10 * time.Second

// EventStore is the part of the store the TUI mutates through.
type EventStore interface {
	Add(ctx context.Context, e event.Event) (event.Event, error)
	Update(ctx context.Context, id string, e event.Event) (event.Event, error)
	Delete(ctx context.Context, id string) (event.Event, error)
}

// EventSavedMsg is sent when an add or edit has been committed.
type EventSavedMsg struct {
	Event   event.Event
	Created bool
}

// EventDeletedMsg is sent when a delete has been committed.
type EventDeletedMsg struct {
	Event event.Event
}

// StoreChangedMsg is sent when the store committed a change, from this
// process or a resync.
type StoreChangedMsg struct{}

// ReminderMsg carries a fired reminder into the UI.
type ReminderMsg struct {
	Notification notify.Notification
}

// TickMsg drives the sidebar clock.
type TickMsg time.Time

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// SaveEvent adds e, or updates the event with id when id is not empty.
func SaveEvent(st EventStore, id string, e event.Event) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if id == "" {
			saved, err := st.Add(ctx, e)
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("adding event: %w", err)}
			}
			return EventSavedMsg{Event: saved, Created: true}
		}

		saved, err := st.Update(ctx, id, e)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving event: %w", err)}
		}
		return EventSavedMsg{Event: saved}
	}
}

// DeleteEvent removes the event with id.
func DeleteEvent(st EventStore, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		removed, err := st.Delete(ctx, id)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting event: %w", err)}
		}
		return EventDeletedMsg{Event: removed}
	}
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text, label string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %s to clipboard", label)}
	}
}

// Tick fires once after d.
func Tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WaitForReminder blocks until a reminder arrives on ch.
func WaitForReminder(ch <-chan notify.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderMsg{Notification: n}
	}
}

// WaitForStoreChange blocks until the store signals on ch.
func WaitForStoreChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
