package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"pet-adoption-hub/internal/domain"
)

// Redis реализует domain.KeyValueStore через Redis.
type Redis struct {
	client    *redis.Client
	namespace string
	timeout   time.Duration
}

// NewRedis создаёт хранилище. Ключи получают префикс namespace.
func NewRedis(client *redis.Client, namespace string) *Redis {
	return &Redis{client: client, namespace: namespace, timeout: 2 * time.Second}
}

func (r *Redis) key(key string) string {
	return scopedKey(r.namespace, key)
}

func (r *Redis) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// GetItem возвращает значение.
func (r *Redis) GetItem(key string) (string, bool, error) {
	ctx, cancel := r.ctx()
	defer cancel()
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetItem задаёт значение без срока жизни.
func (r *Redis) SetItem(key, value string) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// RemoveItem удаляет значение.
func (r *Redis) RemoveItem(key string) error {
	ctx, cancel := r.ctx()
	defer cancel()
	return r.client.Del(ctx, r.key(key)).Err()
}

var _ domain.KeyValueStore = (*Redis)(nil)
