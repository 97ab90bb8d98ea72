package cache

import (
	"context"
	"time"
)

// Store is the external key-value store the Client mediates.
// An empty string returned from GetString with a nil error means the key has
// no live entry.
type Store interface {
	// GetString returns the raw value stored under key, or "" if absent
	GetString(ctx context.Context, key string) (string, error)

	// SetString writes value under key with an absolute expiration of now+ttl
	SetString(ctx context.Context, key, value string, ttl time.Duration) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Ping reports whether the store is reachable
	Ping(ctx context.Context) error

	// Close releases any underlying connections
	Close() error
}
