package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/config"
	"github.com/Nixie-Tech-LLC/study-planner/internal/redis"
	"github.com/Nixie-Tech-LLC/study-planner/internal/store"
)

const sweepInterval = 10 * time.Minute

// InitStore selects and returns the configured workspace store along with a
// function releasing its resources.
func InitStore(ctx context.Context, cfg *config.Config) (store.Store, func()) {
	if cfg.RedisAddress != "" {
		rdb, err := redis.Connect(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize redis store")
		}
		log.Info().Str("address", cfg.RedisAddress).Dur("ttl", cfg.SessionTTL).Msg("using redis workspace store")
		return store.NewRedisStore(rdb, cfg.SessionTTL), func() { _ = rdb.Close() }
	}

	mem := store.NewMemoryStore(cfg.SessionTTL)
	go sweep(ctx, mem)
	log.Info().Dur("ttl", cfg.SessionTTL).Msg("using in-memory workspace store")
	return mem, func() {}
}

func sweep(ctx context.Context, mem *store.MemoryStore) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mem.Sweep(); n > 0 {
				log.Debug().Int("expired", n).Msg("dropped expired workspaces")
			}
		}
	}
}
