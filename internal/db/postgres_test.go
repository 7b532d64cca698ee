package db

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// pgDSNEnv names a Postgres server the tests may create a kv table on.
const pgDSNEnv = "ALMANAC_TEST_PG_DSN"

func newTestPostgres(t *testing.T) (*Postgres, string) {
	t.Helper()
	dsn := os.Getenv(pgDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", pgDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p, err := NewPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("NewPostgres failed: %v", err)
	}

	key := "almanac-test-" + strings.ReplaceAll(t.Name(), "/", "-")
	t.Cleanup(func() {
		_, _ = p.conn.Exec(context.Background(), `DELETE FROM kv WHERE key = $1`, key)
		_ = p.Close()
	})
	return p, key
}

func TestNewPostgres_BadDSN(t *testing.T) {
	if _, err := NewPostgres(context.Background(), "host=localhost port=notaport"); err == nil {
		t.Error("expected an error for an unparsable dsn")
	}
}

func TestPostgres_GetMissing(t *testing.T) {
	p, key := newTestPostgres(t)

	v, ok, err := p.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || v != nil {
		t.Errorf("expected missing key, got %q (ok=%v)", v, ok)
	}
}

func TestPostgres_PutGet(t *testing.T) {
	p, key := newTestPostgres(t)
	ctx := context.Background()

	if err := p.Put(ctx, key, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := p.Put(ctx, key, []byte(`{"a":2}`)); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	v, ok, err := p.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || string(v) != `{"a":2}` {
		t.Errorf("expected latest value, got %q (ok=%v)", v, ok)
	}
}
