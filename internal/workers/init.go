package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/config"
	"infinite-experiment/gamecache/internal/logging"
	"infinite-experiment/gamecache/internal/metrics"
)

type WorkersContainer struct {
	Janitor *StoreJanitor
}

// InitWorkers starts the background workers the configured store needs on g
func InitWorkers(ctx context.Context, g *errgroup.Group, store cache.Store, cfg config.Config, metricsReg *metrics.MetricsRegistry) *WorkersContainer {
	container := &WorkersContainer{}

	if purger, ok := store.(Purger); ok && cfg.Bolt.PurgeInterval > 0 {
		container.Janitor = NewStoreJanitor(purger, cfg.Bolt.PurgeInterval, logging.Named("janitor"), metricsReg)
		g.Go(func() error {
			return container.Janitor.Start(ctx)
		})
	}

	return container
}
