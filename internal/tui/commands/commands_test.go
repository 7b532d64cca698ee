package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/notify"
)

type fakeStore struct {
	added   []event.Event
	updated map[string]event.Event
	deleted []string
	err     error
}

func (f *fakeStore) Add(_ context.Context, e event.Event) (event.Event, error) {
	if f.err != nil {
		return event.Event{}, f.err
	}
	e.ID = "new-id"
	f.added = append(f.added, e)
	return e, nil
}

func (f *fakeStore) Update(_ context.Context, id string, e event.Event) (event.Event, error) {
	if f.err != nil {
		return event.Event{}, f.err
	}
	if f.updated == nil {
		f.updated = map[string]event.Event{}
	}
	e.ID = id
	f.updated[id] = e
	return e, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) (event.Event, error) {
	if f.err != nil {
		return event.Event{}, f.err
	}
	f.deleted = append(f.deleted, id)
	return event.Event{ID: id, Title: "gone"}, nil
}

func TestSaveEvent(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		storeErr    error
		wantCreated bool
		wantErr     bool
	}{
		{name: "add", id: "", wantCreated: true},
		{name: "update", id: "abc"},
		{name: "store error", id: "abc", storeErr: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &fakeStore{err: tt.storeErr}
			msg := SaveEvent(st, tt.id, event.Event{Title: "Standup", Date: "2025-06-23"})()

			if tt.wantErr {
				errMsg, ok := msg.(ErrMsg)
				if !ok {
					t.Fatalf("msg = %T, want ErrMsg", msg)
				}
				if !errors.Is(errMsg.Err, tt.storeErr) {
					t.Fatalf("err = %v, want wrapped %v", errMsg.Err, tt.storeErr)
				}
				return
			}

			saved, ok := msg.(EventSavedMsg)
			if !ok {
				t.Fatalf("msg = %T, want EventSavedMsg", msg)
			}
			if saved.Created != tt.wantCreated {
				t.Errorf("Created = %t, want %t", saved.Created, tt.wantCreated)
			}
			if saved.Event.Title != "Standup" {
				t.Errorf("Title = %q", saved.Event.Title)
			}
		})
	}
}

func TestDeleteEvent(t *testing.T) {
	st := &fakeStore{}
	msg := DeleteEvent(st, "abc")()
	deleted, ok := msg.(EventDeletedMsg)
	if !ok {
		t.Fatalf("msg = %T, want EventDeletedMsg", msg)
	}
	if deleted.Event.ID != "abc" || len(st.deleted) != 1 {
		t.Errorf("deleted = %v, store saw %v", deleted.Event, st.deleted)
	}

	st.err = errors.New("gone already")
	if _, ok := DeleteEvent(st, "abc")().(ErrMsg); !ok {
		t.Error("expected ErrMsg on store failure")
	}
}

func TestCopyToClipboard(t *testing.T) {
	orig := clipboardWrite
	defer func() { clipboardWrite = orig }()

	var got string
	clipboardWrite = func(s string) error {
		got = s
		return nil
	}
	msg := CopyToClipboard("Team Meeting", "event")()
	status, ok := msg.(StatusMsgCmd)
	if !ok {
		t.Fatalf("msg = %T, want StatusMsgCmd", msg)
	}
	if got != "Team Meeting" || status.Msg != "Copied event to clipboard" {
		t.Errorf("clipboard = %q, status = %q", got, status.Msg)
	}

	clipboardWrite = func(string) error { return errors.New("no clipboard") }
	if _, ok := CopyToClipboard("x", "event")().(ErrMsg); !ok {
		t.Error("expected ErrMsg when the clipboard is unavailable")
	}
}

func TestWaitForReminder(t *testing.T) {
	ch := make(chan notify.Notification, 1)
	want := notify.Notification{Title: "Dentist", At: time.Date(2025, 6, 24, 8, 30, 0, 0, time.UTC)}
	ch <- want

	msg := WaitForReminder(ch)()
	got, ok := msg.(ReminderMsg)
	if !ok {
		t.Fatalf("msg = %T, want ReminderMsg", msg)
	}
	if got.Notification.Title != want.Title || !got.Notification.At.Equal(want.At) {
		t.Errorf("notification = %+v", got.Notification)
	}

	close(ch)
	if msg := WaitForReminder(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}

func TestWaitForStoreChange(t *testing.T) {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	if _, ok := WaitForStoreChange(ch)().(StoreChangedMsg); !ok {
		t.Fatal("expected StoreChangedMsg")
	}
	close(ch)
	if msg := WaitForStoreChange(ch)(); msg != nil {
		t.Errorf("closed channel should yield nil, got %T", msg)
	}
}
