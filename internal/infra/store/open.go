package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"pet-adoption-hub/internal/domain"
	"pet-adoption-hub/internal/infra/config"
	"pet-adoption-hub/internal/infra/db"
)

// Драйверы хранилища, поддерживаемые Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverDisabled = "disabled"
)

func scopedKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// Open создаёт хранилище по конфигурации. Возвращаемую функцию нужно вызвать при завершении.
func Open(ctx context.Context, cfg config.AppConfig) (domain.KeyValueStore, func(), error) {
	noop := func() {}
	switch strings.ToLower(cfg.Store.Driver) {
	case "", DriverMemory:
		return NewMemory(cfg.Store.QuotaBytes), noop, nil
	case DriverDisabled:
		return Disabled{}, noop, nil
	case DriverSQLite:
		if cfg.Store.SQLitePath == "" {
			return nil, noop, fmt.Errorf("store: SQLITE_PATH is required for sqlite driver")
		}
		conn, err := OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("store: open sqlite: %w", err)
		}
		s, err := NewSQLite(conn, cfg.Store.Namespace)
		if err != nil {
			_ = conn.Close()
			return nil, noop, err
		}
		return s, func() { _ = conn.Close() }, nil
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return nil, noop, fmt.Errorf("store: REDIS_ADDR is required for redis driver")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("store: ping redis: %w", err)
		}
		return NewRedis(client, cfg.Store.Namespace), func() { _ = client.Close() }, nil
	case DriverPostgres:
		pool, err := db.Connect(cfg.PGDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("store: connect postgres: %w", err)
		}
		s, err := NewPostgres(ctx, pool, cfg.Store.Namespace)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}
