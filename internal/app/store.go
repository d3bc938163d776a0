package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/billiards-tracker/internal/config"
	"github.com/riskibarqy/billiards-tracker/internal/platform/kv"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

// OpenStore opens the key/value backend named by BILLIARDS_STORAGE.
func OpenStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (kv.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemory(), nil
	case config.StorageRedis:
		store := kv.NewRedis(kv.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return store, nil
	case config.StorageBadger, "":
		store, err := kv.OpenBadger(kv.BadgerConfig{Path: cfg.BadgerPath, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("open badger store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
}
