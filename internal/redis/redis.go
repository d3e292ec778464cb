package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	maxRetries    = 5
	retryInterval = 2 * time.Second
)

// Connect opens a client and pings it until the server answers or the
// retries run out.
func Connect(ctx context.Context, address, username, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			log.Info().Str("address", address).Msg("connected to redis")
			return rdb, nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to redis, retrying in %s", retryInterval)

		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("could not connect to redis after %d attempts: %w", maxRetries, err)
}
