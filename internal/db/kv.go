// Package db provides the key/value backends almanac persists its state in.
package db

import (
	"context"
	"errors"
)

// ErrUnknownDriver is returned by Open for an unsupported storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV is a durable string-keyed blob store.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
