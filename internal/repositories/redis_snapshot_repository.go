package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

type RedisSnapshotRepository struct {
	cache  CacheRepositoryInterface
	prefix string
}

func NewRedisSnapshotRepository(cache CacheRepositoryInterface, prefix string) SnapshotRepositoryInterface {
	return &RedisSnapshotRepository{cache: cache, prefix: prefix}
}

func (r *RedisSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := r.cache.Get(ctx, r.prefix+key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *RedisSnapshotRepository) SaveAll(ctx context.Context, snapshots map[string][]byte) error {
	values := make(map[string]string, len(snapshots))
	for key, payload := range snapshots {
		values[r.prefix+key] = string(payload)
	}
	if err := r.cache.SetMany(ctx, values); err != nil {
		return fmt.Errorf("set snapshots: %w", err)
	}
	return nil
}
