package repositories

import "context"

type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	SetMany(ctx context.Context, values map[string]string) error
}
