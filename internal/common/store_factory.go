package common

import (
	"fmt"

	"go.uber.org/zap"

	"infinite-experiment/gamecache/internal/cache"
	"infinite-experiment/gamecache/internal/config"
)

// OpenStore returns the Store selected by STORE_DRIVER
func OpenStore(cfg config.Config, logger *zap.SugaredLogger) (cache.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		client, err := NewRedisClient(cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(client, cfg.Redis.KeyPrefix), nil

	case config.DriverMemory:
		logger.Warnw("Using in-memory store, entries are lost on restart")
		return cache.NewMemoryStore(cfg.MemoryCleanupInterval), nil

	case config.DriverBolt:
		store, err := cache.OpenBoltStore(cfg.Bolt.Path, cfg.Bolt.Bucket)
		if err != nil {
			return nil, err
		}
		logger.Infow("Opened bolt store", "path", cfg.Bolt.Path, "bucket", cfg.Bolt.Bucket)
		return store, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
