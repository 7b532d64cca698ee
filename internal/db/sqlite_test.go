package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/almanac/internal/config"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "almanac.db")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSQLite_GetMissing(t *testing.T) {
	s, _ := newTestSQLite(t)

	v, ok, err := s.Get(context.Background(), "events")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != nil {
		t.Errorf("expected missing key, got %q (ok=%v)", v, ok)
	}
}

func TestSQLite_PutGet(t *testing.T) {
	s, _ := newTestSQLite(t)
	ctx := context.Background()

	if err := s.Put(ctx, "events", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Put(ctx, "events", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "events")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(v) != `{"a":2}` {
		t.Errorf("expected latest value, got %q (ok=%v)", v, ok)
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	s, path := newTestSQLite(t)
	ctx := context.Background()

	if err := s.Put(ctx, "events", []byte("blob")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "events")
	if err != nil || !ok || string(v) != "blob" {
		t.Errorf("after reopen got %q ok=%v err=%v", v, ok, err)
	}

	var version int
	if err := reopened.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("reading user_version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("user_version = %d, want %d", version, schemaVersion)
	}
}

func TestSQLite_InMemory(t *testing.T) {
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	if err := s.Put(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	in := []byte("value")
	if err := m.Put(ctx, "k", in); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	in[0] = 'X'

	v, ok, _ := m.Get(ctx, "k")
	if !ok || string(v) != "value" {
		t.Errorf("stored value aliased caller slice: %q", v)
	}

	boom := errors.New("disk full")
	m.FailPuts(boom)
	if err := m.Put(ctx, "k", []byte("new")); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	m.FailPuts(nil)
	if err := m.Put(ctx, "k", []byte("new")); err != nil {
		t.Errorf("expected writes restored, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(ctx, config.StorageConfig{Driver: config.DriverSQLite, DBPath: filepath.Join(t.TempDir(), "a.db")})
	if err != nil {
		t.Fatalf("Open sqlite failed: %v", err)
	}
	defer kv.Close()
	if _, ok := kv.(*SQLite); !ok {
		t.Errorf("expected *SQLite, got %T", kv)
	}

	if _, err := Open(ctx, config.StorageConfig{Driver: "mysql"}); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}
