package repositories

import (
	"context"
	"fmt"

	"equipment-tracker/migrations"
	"equipment-tracker/pkg/config"
	"equipment-tracker/pkg/database/postgresql"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OpenSnapshotRepository builds the store selected by cfg.Ledger.Storage. The
// returned close function releases its connections.
func OpenSnapshotRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (SnapshotRepositoryInterface, func(), error) {
	switch cfg.Ledger.Storage {
	case config.StorageMemory, "":
		logger.Warn("ledger uses in-memory storage, state is lost on restart")
		return NewMemorySnapshotRepository(), func() {}, nil

	case config.StoragePostgres:
		pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.Migrate {
			if err := postgresql.Migrate(ctx, pool, migrations.FS, logger); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		return NewPostgresSnapshotRepository(pool, logger), pool.Close, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("connected to Redis", zap.String("address", cfg.Redis.Address))
		closeFn := func() { _ = client.Close() }
		return NewRedisSnapshotRepository(NewRedisCacheRepository(client), cfg.Redis.KeyPrefix), closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown ledger storage %q", cfg.Ledger.Storage)
}
