package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

const keyPrefix = "planner:workspace:"

// RedisStore keeps each workspace as a JSON value whose key expires with the
// session.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (model.Snapshot, error) {
	raw, err := r.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Snapshot{}, nil
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("load workspace %s: %w", id, err)
	}

	var s model.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.Snapshot{}, fmt.Errorf("decode workspace %s: %w", id, err)
	}
	return s, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, snapshot model.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode workspace %s: %w", id, err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+id, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save workspace %s: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	return nil
}
