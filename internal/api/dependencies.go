package api

import (
	"time"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/common"
	"infinite-experiment/gamecache/internal/config"
	"infinite-experiment/gamecache/internal/games"
	"infinite-experiment/gamecache/internal/logging"
	"infinite-experiment/gamecache/internal/metrics"
	"infinite-experiment/gamecache/internal/services"
)

type Services struct {
	Catalogue *services.CatalogueService
}

type Dependencies struct {
	Store      cache.Store
	Cache      *cache.Client
	Services   *Services
	Metrics    *metrics.MetricsRegistry
	DefaultTTL time.Duration
}

// InitDependencies opens the configured store and wires everything that
// shares it. The store handle is created once and owned by the caller, who
// closes it on shutdown.
func InitDependencies(cfg config.Config, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	store, err := common.OpenStore(cfg, logging.Named("store"))
	if err != nil {
		return nil, err
	}
	return NewDependencies(store, cfg, metricsReg), nil
}

// NewDependencies wires services around an already opened store
func NewDependencies(store cache.Store, cfg config.Config, metricsReg *metrics.MetricsRegistry) *Dependencies {
	cacheClient := cache.NewClient(store,
		cache.WithLogger(logging.Named("cache")),
		cache.WithMetrics(metricsReg),
	)

	catalogue := services.NewCatalogueService(
		cacheClient,
		games.NewStaticProvider(),
		cfg.GamesCacheKey,
		cfg.GamesCacheTTL,
		logging.Named("catalogue"),
		metricsReg,
	)

	return &Dependencies{
		Store:      store,
		Cache:      cacheClient,
		Services:   &Services{Catalogue: catalogue},
		Metrics:    metricsReg,
		DefaultTTL: cfg.GamesCacheTTL,
	}
}
