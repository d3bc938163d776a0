package kv

import (
	"context"
	"errors"
)

// ErrEmptyKey is returned by stores for a blank key.
var ErrEmptyKey = errors.New("kv: key is required")

// Store is the byte-oriented key/value contract behind session and cookie persistence.
// Get reports ok=false for a missing key without an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
