// Package reminder arms one-shot timers that notify before events start.
package reminder

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/clock"
	"github.com/javiermolinar/almanac/internal/event"
	"github.com/javiermolinar/almanac/internal/notify"
	"github.com/javiermolinar/almanac/internal/store"
)

// sendTimeout bounds a single delivery.
const sendTimeout = 15 * time.Second

// Timer is a cancellable pending call.
type Timer interface {
	Stop() bool
}

// AfterFunc calls f after d on its own goroutine.
type AfterFunc func(d time.Duration, f func()) Timer

func systemAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Pending is an armed reminder.
type Pending struct {
	Event event.Event
	At    time.Time
}

type armed struct {
	timer Timer
	at    time.Time
	event event.Event
}

// Scheduler keeps one timer per event with a future reminder.
type Scheduler struct {
	sink  notify.Sink
	now   clock.Clock
	after AfterFunc
	loc   *time.Location

	mu     sync.Mutex
	timers map[string]*armed
	cron   *cron.Cron
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the source of now.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.now = c }
}

// WithAfterFunc replaces time.AfterFunc.
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Scheduler) { s.after = f }
}

// WithLocation sets the zone event dates and times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.loc = loc }
}

// New returns a scheduler delivering to sink.
func New(sink notify.Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		sink:   sink,
		now:    clock.System,
		after:  systemAfterFunc,
		loc:    time.Local,
		timers: make(map[string]*armed),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule arms the reminder for e, replacing any earlier timer for e.ID.
// It reports whether a timer is now armed. Events without a reminder or
// start time, and reminders already in the past, are not armed.
func (s *Scheduler) Schedule(e event.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(e)
}

func (s *Scheduler) scheduleLocked(e event.Event) bool {
	s.cancelLocked(e.ID)

	at, ok := e.ReminderAt(s.loc)
	if !ok {
		return false
	}
	now := s.now()
	if at.Before(now) {
		applog.Debug("reminder in the past", "id", e.ID, "at", at)
		return false
	}

	a := &armed{at: at, event: e.Clone()}
	a.timer = s.after(at.Sub(now), func() { s.fire(e.ID, a) })
	s.timers[e.ID] = a
	applog.Debug("reminder armed", "id", e.ID, "title", e.Title, "at", at)
	return true
}

// Cancel stops the timer for id, if any.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

func (s *Scheduler) cancelLocked(id string) {
	a, ok := s.timers[id]
	if !ok {
		return
	}
	a.timer.Stop()
	delete(s.timers, id)
	applog.Debug("reminder cancelled", "id", id)
}

// Sync makes the armed timers match days: new and changed events are
// armed, and timers for events no longer present are cancelled.
func (s *Scheduler) Sync(days event.Days) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, e := range days.All() {
		seen[e.ID] = true
		if a, ok := s.timers[e.ID]; ok && sameReminder(a.event, e) {
			continue
		}
		s.scheduleLocked(e)
	}
	for id := range s.timers {
		if !seen[id] {
			s.cancelLocked(id)
		}
	}
}

func sameReminder(a, b event.Event) bool {
	if a.Title != b.Title || a.Date != b.Date || a.Time != b.Time || a.EndTime != b.EndTime {
		return false
	}
	if a.Reminder == nil || b.Reminder == nil {
		return a.Reminder == b.Reminder
	}
	return *a.Reminder == *b.Reminder
}

// HandleChange keeps timers in step with a store mutation.
func (s *Scheduler) HandleChange(c store.Change) {
	switch c.Kind {
	case store.Added, store.Updated:
		s.Schedule(c.Event)
	case store.Deleted:
		s.Cancel(c.Event.ID)
	}
}

// Attach arms every reminder in st and follows its changes.
func (s *Scheduler) Attach(st *store.Store) {
	st.OnChange(func(c store.Change) {
		switch c.Kind {
		case store.Reloaded:
			s.Sync(st.Snapshot())
		case store.Added, store.Updated:
			// Arm what the store holds now; the event may be gone already.
			if cur, ok := st.Find(c.Event.ID); ok {
				s.Schedule(cur)
			} else {
				s.Cancel(c.Event.ID)
			}
		default:
			s.HandleChange(c)
		}
	})
	s.Sync(st.Snapshot())
}

// StartResync runs reload on the cron schedule spec until Stop.
func (s *Scheduler) StartResync(ctx context.Context, spec string, reload func(context.Context) error) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := reload(ctx); err != nil {
			applog.Error("reminder resync", err)
			return
		}
		applog.Debug("reminder resync", "armed", s.Len())
	})
	if err != nil {
		return fmt.Errorf("scheduling resync %q: %w", spec, err)
	}

	s.mu.Lock()
	if s.cron != nil {
		s.cron.Stop()
	}
	s.cron = c
	s.mu.Unlock()

	c.Start()
	return nil
}

// Stop cancels every timer and the resync job.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	for id := range s.timers {
		s.cancelLocked(id)
	}
}

// Len returns the number of armed reminders.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Pending lists armed reminders, soonest first.
func (s *Scheduler) Pending() []Pending {
	s.mu.Lock()
	out := make([]Pending, 0, len(s.timers))
	for _, a := range s.timers {
		out = append(out, Pending{Event: a.event.Clone(), At: a.at})
	}
	s.mu.Unlock()

	slices.SortFunc(out, func(a, b Pending) int { return a.At.Compare(b.At) })
	return out
}

func (s *Scheduler) fire(id string, a *armed) {
	s.mu.Lock()
	if s.timers[id] != a {
		// Replaced or cancelled after the timer was already running.
		s.mu.Unlock()
		return
	}
	delete(s.timers, id)
	s.mu.Unlock()

	n := Message(a.event, a.at)
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := notify.Send(ctx, s.sink, n); err != nil {
		applog.Error("delivering reminder", err, "id", id)
		return
	}
	applog.Info("reminder fired", "id", id, "title", a.event.Title)
}

// Message builds the notification for e firing at at.
func Message(e event.Event, at time.Time) notify.Notification {
	body := e.TimeRange()
	switch {
	case e.Reminder == nil || *e.Reminder == 0:
		body = "Starting now · " + body
	case *e.Reminder == 60:
		body = "In 1 hour · " + body
	default:
		body = fmt.Sprintf("In %d minutes · %s", *e.Reminder, body)
	}
	return notify.Notification{Title: e.Title, Body: body, At: at}
}
