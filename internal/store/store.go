// Package store holds the calendar's events keyed by date and persists them
// as a single JSON blob in a db.KV.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/javiermolinar/almanac/internal/applog"
	"github.com/javiermolinar/almanac/internal/dateutil"
	"github.com/javiermolinar/almanac/internal/db"
	"github.com/javiermolinar/almanac/internal/event"
)

// Key is the KV key the event blob is stored under.
const Key = "events"

var (
	ErrIndexOutOfRange = errors.New("event index out of range")
	ErrEventNotFound   = errors.New("event not found")
	ErrCorruptState    = errors.New("stored events are corrupt")
)

// ChangeKind says what a committed mutation did.
type ChangeKind int

const (
	Added ChangeKind = iota
	Updated
	Deleted
	Reloaded
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	case Reloaded:
		return "reloaded"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes a committed mutation. Event is the new value, or the
// removed one for Deleted. Both are zero for Reloaded.
type Change struct {
	Kind     ChangeKind
	Event    event.Event
	Previous event.Event
}

// Store is safe for concurrent use.
type Store struct {
	kv    db.KV
	newID func() string

	mu   sync.RWMutex
	days event.Days
	raw  []byte
	seq  uint64 // guarded by mu

	lmu       sync.Mutex
	listeners []func(Change)

	dmu       sync.Mutex
	dcond     *sync.Cond
	delivered uint64
}

// New returns an empty store backed by kv. Call Load before use.
func New(kv db.KV) *Store {
	s := &Store{
		kv:    kv,
		newID: uuid.NewString,
		days:  event.Days{},
	}
	s.dcond = sync.NewCond(&s.dmu)
	return s
}

// OnChange registers fn to run after every committed mutation. fn runs on
// the mutating goroutine, after the store lock is released, and sees changes
// in commit order. fn may read the store but must not mutate it.
func (s *Store) OnChange(fn func(Change)) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// ticket reserves the next delivery slot. The caller holds s.mu for writing
// and must pass the ticket to notify exactly once.
func (s *Store) ticket() uint64 {
	s.seq++
	return s.seq
}

// notify waits until every earlier ticket has been delivered, then runs the
// listeners for changes. An empty changes only advances the queue.
func (s *Store) notify(ticket uint64, changes ...Change) {
	s.dmu.Lock()
	for s.delivered != ticket-1 {
		s.dcond.Wait()
	}
	s.dmu.Unlock()

	defer func() {
		s.dmu.Lock()
		s.delivered = ticket
		s.dcond.Broadcast()
		s.dmu.Unlock()
	}()

	if len(changes) == 0 {
		return
	}
	s.lmu.Lock()
	listeners := make([]func(Change), len(s.listeners))
	copy(listeners, s.listeners)
	s.lmu.Unlock()

	for _, c := range changes {
		for _, fn := range listeners {
			fn(c)
		}
	}
}

// Load reads the persisted blob. A missing blob seeds the bundled defaults.
// A corrupt blob is logged and replaced by the defaults.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	if ok {
		days, assigned, err := s.decode(data)
		if err == nil {
			if assigned {
				return s.commit(ctx, days)
			}
			s.days, s.raw = days, data
			applog.Info("events loaded", "events", days.Len())
			return nil
		}
		applog.Error("discarding stored events", err, "bytes", len(data))
	}

	days, err := Defaults()
	if err != nil {
		return err
	}
	for date, evs := range days {
		for i := range evs {
			days[date][i].ID = s.newID()
		}
	}
	applog.Info("seeding default events", "events", days.Len())
	return s.commit(ctx, days)
}

// Reload replaces the in-memory state with the persisted blob if it changed.
// A corrupt blob leaves the current state in place.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	data, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.mu.Unlock()
		return false, fmt.Errorf("reloading events: %w", err)
	}
	if !ok || bytes.Equal(data, s.raw) {
		s.mu.Unlock()
		return false, nil
	}
	days, assigned, err := s.decode(data)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	if assigned {
		err = s.commit(ctx, days)
	} else {
		s.days, s.raw = days, data
	}
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	t := s.ticket()
	s.mu.Unlock()

	applog.Debug("events reloaded", "events", days.Len())
	s.notify(t, Change{Kind: Reloaded})
	return true, nil
}

// refresh adopts the persisted blob when another writer changed it since
// this store last read or wrote it. A corrupt blob is logged and ignored so
// the next commit replaces it. The caller holds s.mu.
func (s *Store) refresh(ctx context.Context) (bool, error) {
	data, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		return false, fmt.Errorf("reading events: %w", err)
	}
	if !ok || bytes.Equal(data, s.raw) {
		return false, nil
	}
	days, _, err := s.decode(data)
	if err != nil {
		applog.Error("ignoring corrupt stored events", err, "bytes", len(data))
		return false, nil
	}
	s.days, s.raw = days, data
	applog.Info("picked up external changes", "events", days.Len())
	return true, nil
}

// mutate applies fn to the freshest persisted state and commits the result.
// Changes made by other writers are folded in first and reported as
// Reloaded ahead of fn's own changes.
func (s *Store) mutate(ctx context.Context, fn func(cur event.Days) (event.Days, []Change, error)) error {
	var changes []Change

	s.mu.Lock()
	refreshed, err := s.refresh(ctx)
	if refreshed {
		changes = append(changes, Change{Kind: Reloaded})
	}
	if err == nil {
		var next event.Days
		var done []Change
		next, done, err = fn(s.days)
		if err == nil {
			err = s.commit(ctx, next)
		}
		if err == nil {
			changes = append(changes, done...)
		}
	}
	t := s.ticket()
	s.mu.Unlock()

	s.notify(t, changes...)
	return err
}

// decode parses and validates a blob. Events without an ID get one, and
// assigned reports whether that happened.
func (s *Store) decode(data []byte) (event.Days, bool, error) {
	var raw map[string][]event.Event
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	assigned := false
	days := make(event.Days, len(raw))
	for date, evs := range raw {
		if !dateutil.ValidISO(date) {
			return nil, false, fmt.Errorf("%w: bad date key %q", ErrCorruptState, date)
		}
		if len(evs) == 0 {
			continue
		}
		list := make([]event.Event, 0, len(evs))
		for i, e := range evs {
			e.Date = date
			n, err := e.Normalize()
			if err != nil {
				return nil, false, fmt.Errorf("%w: %s[%d]: %v", ErrCorruptState, date, i, err)
			}
			if n.ID == "" {
				n.ID = s.newID()
				assigned = true
			}
			list = append(list, n)
		}
		days[date] = list
	}
	return days, assigned, nil
}

// commit persists next and makes it current. On failure the current state
// is untouched. The caller holds s.mu.
func (s *Store) commit(ctx context.Context, next event.Days) error {
	data, err := json.Marshal(map[string][]event.Event(next))
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}
	if err := s.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}
	s.days, s.raw = next, data
	return nil
}

// cloneDays deep-copies d, dropping empty dates.
func cloneDays(d event.Days) event.Days {
	out := make(event.Days, len(d))
	for date, evs := range d {
		if len(evs) == 0 {
			continue
		}
		list := make([]event.Event, len(evs))
		for i, e := range evs {
			list[i] = e.Clone()
		}
		out[date] = list
	}
	return out
}

// Get returns a copy of the events on date in insertion order, never nil.
func (s *Store) Get(date string) []event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	evs := s.days[date]
	out := make([]event.Event, len(evs))
	for i, e := range evs {
		out[i] = e.Clone()
	}
	return out
}

// Snapshot returns a deep copy of every event.
func (s *Store) Snapshot() event.Days {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDays(s.days)
}

// Find returns the event with id.
func (s *Store) Find(id string) (event.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.days.Find(id)
	return e.Clone(), ok
}

// Add validates e, gives it a new ID and appends it to its date.
func (s *Store) Add(ctx context.Context, e event.Event) (event.Event, error) {
	n, err := e.Normalize()
	if err != nil {
		return event.Event{}, err
	}

	n.ID = s.newID()
	err = s.mutate(ctx, func(cur event.Days) (event.Days, []Change, error) {
		next := cloneDays(cur)
		next[n.Date] = append(next[n.Date], n)
		return next, []Change{{Kind: Added, Event: n.Clone()}}, nil
	})
	if err != nil {
		return event.Event{}, err
	}

	applog.Info("event added", "id", n.ID, "date", n.Date, "title", n.Title)
	return n, nil
}

// AddAll validates and appends every event in one write. Nothing is stored
// if any event is invalid.
func (s *Store) AddAll(ctx context.Context, events []event.Event) ([]event.Event, error) {
	normalized := make([]event.Event, len(events))
	for i, e := range events {
		n, err := e.Normalize()
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, e.Title, err)
		}
		normalized[i] = n
	}
	if len(normalized) == 0 {
		return nil, nil
	}

	for i := range normalized {
		normalized[i].ID = s.newID()
	}
	err := s.mutate(ctx, func(cur event.Days) (event.Days, []Change, error) {
		next := cloneDays(cur)
		changes := make([]Change, 0, len(normalized))
		for _, n := range normalized {
			next[n.Date] = append(next[n.Date], n)
			changes = append(changes, Change{Kind: Added, Event: n.Clone()})
		}
		return next, changes, nil
	})
	if err != nil {
		return nil, err
	}

	applog.Info("events added", "count", len(normalized))
	return normalized, nil
}

// EditAt replaces the event at index on date. The ID is kept.
func (s *Store) EditAt(ctx context.Context, date string, index int, e event.Event) (event.Event, error) {
	s.mu.RLock()
	evs := s.days[date]
	if index < 0 || index >= len(evs) {
		s.mu.RUnlock()
		applog.Error("edit by index", ErrIndexOutOfRange, "date", date, "index", index)
		return event.Event{}, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, date, index)
	}
	id := evs[index].ID
	s.mu.RUnlock()

	if e.Date == "" {
		e.Date = date
	}
	return s.Update(ctx, id, e)
}

// DeleteAt removes the event at index on date. Later events shift down.
func (s *Store) DeleteAt(ctx context.Context, date string, index int) (event.Event, error) {
	s.mu.RLock()
	evs := s.days[date]
	if index < 0 || index >= len(evs) {
		s.mu.RUnlock()
		applog.Error("delete by index", ErrIndexOutOfRange, "date", date, "index", index)
		return event.Event{}, fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, date, index)
	}
	id := evs[index].ID
	s.mu.RUnlock()

	return s.Delete(ctx, id)
}

// locate returns the date and index of id in days.
func locate(days event.Days, id string) (string, int, bool) {
	for date, evs := range days {
		for i, e := range evs {
			if e.ID == id {
				return date, i, true
			}
		}
	}
	return "", 0, false
}

// Update replaces the event with id. If the date changes the event moves to
// the end of the new date's list; otherwise it keeps its position.
func (s *Store) Update(ctx context.Context, id string, e event.Event) (event.Event, error) {
	n, err := e.Normalize()
	if err != nil {
		return event.Event{}, err
	}
	n.ID = id

	var prev event.Event
	err = s.mutate(ctx, func(cur event.Days) (event.Days, []Change, error) {
		date, idx, ok := locate(cur, id)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		prev = cur[date][idx].Clone()

		next := cloneDays(cur)
		if n.Date == date {
			next[date][idx] = n
		} else {
			next[date] = append(next[date][:idx], next[date][idx+1:]...)
			if len(next[date]) == 0 {
				delete(next, date)
			}
			next[n.Date] = append(next[n.Date], n)
		}
		return next, []Change{{Kind: Updated, Event: n.Clone(), Previous: prev}}, nil
	})
	if err != nil {
		return event.Event{}, err
	}

	applog.Info("event updated", "id", id, "date", n.Date, "from", prev.Date)
	return n, nil
}

// Delete removes the event with id and returns it.
func (s *Store) Delete(ctx context.Context, id string) (event.Event, error) {
	var removed event.Event
	err := s.mutate(ctx, func(cur event.Days) (event.Days, []Change, error) {
		date, idx, ok := locate(cur, id)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrEventNotFound, id)
		}
		removed = cur[date][idx].Clone()

		next := cloneDays(cur)
		next[date] = append(next[date][:idx], next[date][idx+1:]...)
		if len(next[date]) == 0 {
			delete(next, date)
		}
		return next, []Change{{Kind: Deleted, Event: removed.Clone()}}, nil
	})
	if err != nil {
		return event.Event{}, err
	}

	applog.Info("event deleted", "id", id, "date", removed.Date)
	return removed, nil
}
