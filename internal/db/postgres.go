package db

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Postgres implements KV on a Postgres table. A single connection is shared
// and serialised, which is all one almanac process needs.
type Postgres struct {
	mu   sync.Mutex
	conn *pgx.Conn
}

// NewPostgres connects with dsn, pings the server and ensures the kv table.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := conn.Exec(ctx, query); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &Postgres{conn: conn}, nil
}

// Get returns the blob stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var value []byte
	err := p.conn.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying key %q: %w", key, err)
	}
	return value, true, nil
}

// Put upserts the blob under key.
func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	query := `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := p.conn.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// Close closes the connection.
func (p *Postgres) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.Close(context.Background())
}
