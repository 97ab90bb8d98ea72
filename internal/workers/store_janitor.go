package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"infinite-experiment/gamecache/internal/metrics"
)

// Purger is implemented by stores that need expired entries removed by hand
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// StoreJanitor periodically purges expired entries from a local store.
// Redis and the in-memory store expire entries on their own.
type StoreJanitor struct {
	store    Purger
	interval time.Duration
	logger   *zap.SugaredLogger
	metrics  *metrics.MetricsRegistry
}

func NewStoreJanitor(store Purger, interval time.Duration, logger *zap.SugaredLogger, metricsReg *metrics.MetricsRegistry) *StoreJanitor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &StoreJanitor{
		store:    store,
		interval: interval,
		logger:   logger,
		metrics:  metricsReg,
	}
}

// Start runs until ctx is done
func (j *StoreJanitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.Infow("Store janitor started", "interval", j.interval.String())

	for {
		select {
		case <-ctx.Done():
			j.logger.Infow("Store janitor stopped")
			return nil
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce purges expired entries and returns how many were removed
func (j *StoreJanitor) RunOnce(ctx context.Context) int {
	removed, err := j.store.Purge(ctx)
	if err != nil {
		j.logger.Errorw("Failed to purge expired entries", "error", err)
		return 0
	}
	if removed > 0 {
		j.logger.Debugw("Purged expired entries", "removed", removed)
		if j.metrics != nil {
			j.metrics.StorePurgedTotal.Add(float64(removed))
		}
	}
	return removed
}
