package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/constants"
	"infinite-experiment/gamecache/internal/games"
	"infinite-experiment/gamecache/internal/metrics"
)

// LoadResult is what the catalogue page displays
type LoadResult struct {
	Games     []games.Game
	Message   string
	Source    constants.DataSource
	FromCache bool
}

// CatalogueService reads the game catalogue through the cache, falling back
// to the provider on a miss or a cache failure.
type CatalogueService struct {
	cache    *cache.Client
	provider games.Provider
	key      string
	ttl      time.Duration
	logger   *zap.SugaredLogger
	metrics  *metrics.MetricsRegistry
}

func NewCatalogueService(
	c *cache.Client,
	provider games.Provider,
	key string,
	ttl time.Duration,
	logger *zap.SugaredLogger,
	metricsReg *metrics.MetricsRegistry,
) *CatalogueService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &CatalogueService{
		cache:    c,
		provider: provider,
		key:      key,
		ttl:      ttl,
		logger:   logger,
		metrics:  metricsReg,
	}
}

// Key returns the cache key the catalogue is stored under
func (s *CatalogueService) Key() string {
	return s.key
}

// Load returns the catalogue and where it came from. On a miss, or when the
// entry holds a JSON null, the provider's data is written back with the
// configured TTL.
func (s *CatalogueService) Load(ctx context.Context) (LoadResult, error) {
	cached, found, err := cache.Get[[]games.Game](ctx, s.cache, s.key)
	empty := found && cached == nil
	switch {
	case err != nil && isCanceled(err):
		return LoadResult{}, err
	case err != nil:
		s.logger.Warnw("Cache read failed, falling back to provider", "key", s.key, "error", err)
	case empty:
		s.logger.Warnw("Cached catalogue is empty, reloading from provider", "key", s.key)
	case found:
		s.record(constants.DataSourceCache)
		return LoadResult{
			Games:     cached,
			Message:   constants.MsgLoadedFromCache,
			Source:    constants.DataSourceCache,
			FromCache: true,
		}, nil
	}

	list, err := s.provider.FetchGames(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("fetch games: %w", err)
	}

	write := s.cache.Set
	if empty {
		// Set keeps the existing entry, so the null has to be replaced
		write = s.cache.Update
	}
	if err := write(ctx, s.key, list, s.ttl); err != nil {
		if isCanceled(err) {
			return LoadResult{}, err
		}
		s.logger.Warnw("Failed to populate cache", "key", s.key, "error", err)
	}

	s.record(constants.DataSourceFallback)
	return LoadResult{
		Games:     list,
		Message:   constants.MsgLoadedFromAPI,
		Source:    constants.DataSourceFallback,
		FromCache: false,
	}, nil
}

// Clear removes the cached catalogue
func (s *CatalogueService) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}

func (s *CatalogueService) record(source constants.DataSource) {
	if s.metrics != nil {
		s.metrics.CatalogueLoadsTotal.WithLabelValues(string(source)).Inc()
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
