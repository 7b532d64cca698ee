package db

import (
	"context"
	"fmt"

	"github.com/javiermolinar/almanac/internal/config"
)

// Open returns the KV backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (KV, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewSQLite(cfg.DBPath)
	case config.DriverPostgres:
		return NewPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
