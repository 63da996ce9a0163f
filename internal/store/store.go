package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for keys that were never set or were removed.
var ErrNotFound = errors.New("store: key not found")

// Store is the key-value persistence used for session state. Values are
// opaque bytes; callers own the encoding.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	// Append adds value to the list at key in one atomic step, keeping at
	// most the newest limit entries. A limit <= 0 keeps every entry.
	Append(ctx context.Context, key string, value []byte, limit int) error
	// List returns the list at key oldest first; a missing key is empty.
	List(ctx context.Context, key string) ([][]byte, error)
	Close() error
}
