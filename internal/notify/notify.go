// Package notify delivers reminder notifications.
package notify

import (
	"context"
	"errors"
	"time"
)

// Notification is one reminder.
type Notification struct {
	Title string
	Body  string
	At    time.Time
}

// Sink delivers notifications. When Available reports false, callers skip
// Notify and nothing is delivered.
type Sink interface {
	Available() bool
	Notify(ctx context.Context, n Notification) error
}

// Nop drops every notification.
type Nop struct{}

func (Nop) Available() bool                             { return false }
func (Nop) Notify(context.Context, Notification) error { return nil }

// Multi fans a notification out to every available sink.
type Multi []Sink

// Available reports whether any sink can deliver.
func (m Multi) Available() bool {
	for _, s := range m {
		if s.Available() {
			return true
		}
	}
	return false
}

// Notify delivers to every available sink and joins their errors.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, s := range m {
		if !s.Available() {
			continue
		}
		if err := s.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Send delivers n through s if s is available.
func Send(ctx context.Context, s Sink, n Notification) error {
	if s == nil || !s.Available() {
		return nil
	}
	return s.Notify(ctx, n)
}
