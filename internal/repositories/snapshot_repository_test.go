package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemorySnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySnapshotRepository()

	payload, err := repo.Load(ctx, "equipment")
	require.NoError(t, err)
	assert.Nil(t, payload)

	source := []byte(`[{"id":"1"}]`)
	require.NoError(t, repo.SaveAll(ctx, map[string][]byte{"equipment": source}))
	source[0] = 'X'

	payload, err = repo.Load(ctx, "equipment")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(payload))
}

type fakeCache struct {
	values map[string]string
	err    error
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (f *fakeCache) SetMany(_ context.Context, values map[string]string) error {
	if f.err != nil {
		return f.err
	}
	for k, v := range values {
		f.values[k] = v
	}
	return nil
}

func TestRedisSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	cache := &fakeCache{values: map[string]string{}}
	repo := NewRedisSnapshotRepository(cache, "et:")

	payload, err := repo.Load(ctx, "history")
	require.NoError(t, err)
	assert.Nil(t, payload)

	require.NoError(t, repo.SaveAll(ctx, map[string][]byte{"history": []byte(`[]`), "notifications": []byte(`[{"id":"n"}]`)}))
	assert.Equal(t, `[]`, cache.values["et:history"])
	assert.Equal(t, `[{"id":"n"}]`, cache.values["et:notifications"])

	payload, err = repo.Load(ctx, "notifications")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"n"}]`, string(payload))

	cache.err = errors.New("connection refused")
	_, err = repo.Load(ctx, "history")
	assert.ErrorContains(t, err, "connection refused")
	assert.Error(t, repo.SaveAll(ctx, map[string][]byte{"history": []byte(`[]`)}))
}

func newMockRepo(t *testing.T) (SnapshotRepositoryInterface, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresSnapshotRepository(mock, zap.NewNop()), mock
}

func TestPostgresSnapshotRepository_Load(t *testing.T) {
	selectSQL := regexp.QuoteMeta(`SELECT payload FROM ledger_snapshots WHERE collection = $1`)

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		want    []byte
		wantErr bool
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"id":"c1"}]`))
				mock.ExpectQuery(selectSQL).WithArgs("categories").WillReturnRows(rows)
			},
			want: []byte(`[{"id":"c1"}]`),
		},
		{
			name: "never saved",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectSQL).WithArgs("categories").WillReturnError(pgx.ErrNoRows)
			},
			want: nil,
		},
		{
			name: "query error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(selectSQL).WithArgs("categories").WillReturnError(errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.Load(context.Background(), "categories")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresSnapshotRepository_SaveAll(t *testing.T) {
	upsertSQL := regexp.QuoteMeta(`INSERT INTO ledger_snapshots (collection,payload,updated_at) VALUES ($1,$2::jsonb,NOW()) ON CONFLICT (collection) DO UPDATE`)

	t.Run("commits all collections in key order", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(upsertSQL).WithArgs("equipment", `[{"id":"e1"}]`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(upsertSQL).WithArgs("history", `[]`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		err := repo.SaveAll(context.Background(), map[string][]byte{
			"history":   []byte(`[]`),
			"equipment": []byte(`[{"id":"e1"}]`),
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when an upsert fails", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin()
		mock.ExpectExec(upsertSQL).WithArgs("equipment", pgxmock.AnyArg()).
			WillReturnError(errors.New("constraint violated"))
		mock.ExpectRollback()

		err := repo.SaveAll(context.Background(), map[string][]byte{
			"equipment": []byte(`[]`),
			"history":   []byte(`[]`),
		})
		assert.ErrorContains(t, err, "constraint violated")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err := repo.SaveAll(context.Background(), map[string][]byte{"equipment": []byte(`[]`)})
		assert.ErrorContains(t, err, "pool exhausted")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
