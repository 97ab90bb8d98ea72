package cache

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBolt(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "cache.bbolt"), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_GetSetRemove(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	v, err := s.GetString(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.SetString(ctx, "k", `[1,2,3]`, time.Minute))
	v, err = s.GetString(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, v)

	require.NoError(t, s.Remove(ctx, "k"))
	require.NoError(t, s.Remove(ctx, "never-set"))
	v, err = s.GetString(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestBoltStore_ExpiryAndPurge(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.SetString(ctx, "short", "a", time.Second))
	require.NoError(t, s.SetString(ctx, "long", "b", time.Hour))

	now = now.Add(2 * time.Second)

	v, err := s.GetString(ctx, "short")
	require.NoError(t, err)
	assert.Empty(t, v, "expired entry reads as absent")

	v, err = s.GetString(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	removed, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}

func TestBoltStore_WithClient(t *testing.T) {
	c := NewClient(openTestBolt(t))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Games_Cache", fiveGames(), time.Minute))
	require.NoError(t, c.Set(ctx, "Games_Cache", []game{}, time.Minute))

	got, found, err := Get[[]game](ctx, c, "Games_Cache")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, fiveGames(), got)

	require.NoError(t, c.Update(ctx, "Games_Cache", fiveGames()[:1], time.Minute))
	got, _, err = Get[[]game](ctx, c, "Games_Cache")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBoltStore_LongLifetime(t *testing.T) {
	s := openTestBolt(t)
	ctx := context.Background()

	// runs past the int64 nanosecond range
	require.NoError(t, s.SetString(ctx, "k", "v", 250*365*24*time.Hour))
	v, err := s.GetString(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	removed, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)

	c := NewClient(s)
	require.NoError(t, c.Set(ctx, "forever", fiveGames(), time.Duration(math.MaxInt64)))
	got, found, err := Get[[]game](ctx, c, "forever")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, fiveGames(), got)
}
