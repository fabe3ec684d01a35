package preferences

import (
	"context"
	"errors"

	"hhdeals/internal/storage"
)

// RedisBackend keeps documents in Redis without a TTL.
type RedisBackend struct {
	cache *storage.Cache
}

func NewRedisBackend(cache *storage.Cache) *RedisBackend {
	return &RedisBackend{cache: cache}
}

func (b *RedisBackend) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.cache.GetBytes(ctx, storage.PreferencesKey(key))
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}

func (b *RedisBackend) Save(ctx context.Context, key string, data []byte) error {
	return b.cache.SetBytes(ctx, storage.PreferencesKey(key), data, 0)
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.cache.Delete(ctx, storage.PreferencesKey(key))
}
