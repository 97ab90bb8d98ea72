package cache

import (
	"context"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process Store backed by go-cache. It stands in for
// Redis in local development and tests; expired entries are invisible to
// GetString even before the janitor removes them.
type MemoryStore struct {
	cache  *gocache.Cache
	closed atomic.Bool
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store whose janitor runs every cleanupInterval.
// A non-positive interval disables the janitor.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{cache: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *MemoryStore) GetString(ctx context.Context, key string) (string, error) {
	if err := m.check(ctx); err != nil {
		return "", err
	}
	val, found := m.cache.Get(key)
	if !found {
		return "", nil
	}
	s, _ := val.(string)
	return s, nil
}

func (m *MemoryStore) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	m.cache.Set(key, value, ttl)
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := m.check(ctx); err != nil {
		return err
	}
	m.cache.Delete(key)
	return nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return m.check(ctx)
}

// Len returns the number of items, including expired ones not yet cleaned up
func (m *MemoryStore) Len() int {
	return m.cache.ItemCount()
}

// Close flushes all entries; further calls fail with ErrStoreClosed
func (m *MemoryStore) Close() error {
	m.closed.Store(true)
	m.cache.Flush()
	return nil
}

func (m *MemoryStore) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.closed.Load() {
		return ErrStoreClosed
	}
	return nil
}
