package kv

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no value exists for a key.
	ErrNotFound = errors.New("key not found")
)

// Store is the contract a key-value persistence backend must satisfy.
// Values are opaque blobs; every write carries an expiry so that stale
// state self-deletes when nothing refreshes it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
