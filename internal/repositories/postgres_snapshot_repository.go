package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const snapshotTable = "ledger_snapshots"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type PostgresSnapshotRepository struct {
	db        querier
	txManager TxManagerInterface
	logger    *zap.Logger
}

func NewPostgresSnapshotRepository(pool pgxPool, logger *zap.Logger) SnapshotRepositoryInterface {
	return &PostgresSnapshotRepository{
		db:        pool,
		txManager: NewTxManager(pool),
		logger:    logger,
	}
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query, args, err := psql.Select("payload").
		From(snapshotTable).
		Where(sq.Eq{"collection": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot select: %w", err)
	}

	var payload []byte
	if err := r.db.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select snapshot %s: %w", key, err)
	}
	return payload, nil
}

// SaveAll upserts every collection inside one transaction, in key order.
func (r *PostgresSnapshotRepository) SaveAll(ctx context.Context, snapshots map[string][]byte) error {
	keys := make([]string, 0, len(snapshots))
	for key := range snapshots {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return r.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, key := range keys {
			query, args, err := psql.Insert(snapshotTable).
				Columns("collection", "payload", "updated_at").
				Values(key, sq.Expr("?::jsonb", string(snapshots[key])), sq.Expr("NOW()")).
				Suffix("ON CONFLICT (collection) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
				ToSql()
			if err != nil {
				return fmt.Errorf("build snapshot upsert: %w", err)
			}
			if _, err := tx.Exec(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert snapshot %s: %w", key, err)
			}
		}
		r.logger.Debug("ledger snapshots saved", zap.Strings("collections", keys))
		return nil
	})
}
