package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/constants"
	"infinite-experiment/gamecache/internal/games"
	"infinite-experiment/gamecache/internal/metrics"
)

// Mock games.Provider
type mockProvider struct {
	calls          int
	fetchGamesFunc func(ctx context.Context) ([]games.Game, error)
}

func (m *mockProvider) FetchGames(ctx context.Context) ([]games.Game, error) {
	m.calls++
	return m.fetchGamesFunc(ctx)
}

// brokenStore fails every call
type brokenStore struct {
	err error
}

func (b brokenStore) GetString(context.Context, string) (string, error) { return "", b.err }
func (b brokenStore) SetString(context.Context, string, string, time.Duration) error {
	return b.err
}
func (b brokenStore) Remove(context.Context, string) error { return b.err }
func (b brokenStore) Ping(context.Context) error { return b.err }
func (b brokenStore) Close() error { return nil }

func staticMock() *mockProvider {
	return &mockProvider{fetchGamesFunc: games.NewStaticProvider().FetchGames}
}

func newTestCatalogue(t *testing.T, store cache.Store, provider games.Provider) (*CatalogueService, *metrics.MetricsRegistry) {
	t.Helper()
	reg := metrics.NewMetricsRegistryWith(prometheus.NewRegistry())
	client := cache.NewClient(store, cache.WithMetrics(reg))
	return NewCatalogueService(client, provider, "Games_Cache", time.Minute, nil, reg), reg
}

func TestCatalogueService_Load_MissThenHit(t *testing.T) {
	provider := staticMock()
	svc, reg := newTestCatalogue(t, cache.NewMemoryStore(0), provider)
	ctx := context.Background()

	first, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, constants.MsgLoadedFromAPI, first.Message)
	assert.Equal(t, constants.DataSourceFallback, first.Source)
	require.Len(t, first.Games, 5)

	second, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, constants.MsgLoadedFromCache, second.Message)
	assert.Equal(t, first.Games, second.Games)

	assert.Equal(t, 1, provider.calls, "provider is only consulted on a miss")
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CatalogueLoadsTotal.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CatalogueLoadsTotal.WithLabelValues("api")))
}

func TestCatalogueService_Clear(t *testing.T) {
	provider := staticMock()
	svc, _ := newTestCatalogue(t, cache.NewMemoryStore(0), provider)
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))

	res, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 2, provider.calls)
}

func TestCatalogueService_Clear_NothingCached(t *testing.T) {
	svc, _ := newTestCatalogue(t, cache.NewMemoryStore(0), staticMock())
	assert.NoError(t, svc.Clear(context.Background()))
}

func TestCatalogueService_Load_StoreDownFallsBack(t *testing.T) {
	provider := staticMock()
	svc, _ := newTestCatalogue(t, brokenStore{err: errors.New("connection refused")}, provider)

	res, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Len(t, res.Games, 5)
	assert.Equal(t, 1, provider.calls)
}

func TestCatalogueService_Load_ProviderError(t *testing.T) {
	provider := &mockProvider{fetchGamesFunc: func(ctx context.Context) ([]games.Game, error) {
		return nil, errors.New("upstream unavailable")
	}}
	svc, _ := newTestCatalogue(t, cache.NewMemoryStore(0), provider)

	_, err := svc.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestCatalogueService_Load_Canceled(t *testing.T) {
	provider := staticMock()
	svc, _ := newTestCatalogue(t, cache.NewMemoryStore(0), provider)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, provider.calls)
}

func TestCatalogueService_Load_NullEntryIsReloaded(t *testing.T) {
	provider := staticMock()
	store := cache.NewMemoryStore(0)
	svc, reg := newTestCatalogue(t, store, provider)
	ctx := context.Background()

	require.NoError(t, store.SetString(ctx, "Games_Cache", "null", time.Minute))

	res, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, constants.MsgLoadedFromAPI, res.Message)
	assert.Len(t, res.Games, 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CatalogueLoadsTotal.WithLabelValues("api")))

	// the null entry was replaced with the provider's list
	again, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.True(t, again.FromCache)
	assert.Len(t, again.Games, 5)
	assert.Equal(t, 1, provider.calls)
}
