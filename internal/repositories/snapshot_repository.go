package repositories

import (
	"context"
	"sync"
)

// SnapshotRepositoryInterface stores one JSON payload per ledger collection.
// Load returns a nil payload and no error for a collection that was never saved.
type SnapshotRepositoryInterface interface {
	Load(ctx context.Context, key string) ([]byte, error)
	SaveAll(ctx context.Context, snapshots map[string][]byte) error
}

type MemorySnapshotRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{data: make(map[string][]byte)}
}

func (r *MemorySnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), payload...), nil
}

func (r *MemorySnapshotRepository) SaveAll(_ context.Context, snapshots map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, payload := range snapshots {
		r.data[key] = append([]byte(nil), payload...)
	}
	return nil
}
