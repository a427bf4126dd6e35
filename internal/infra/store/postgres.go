package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pet-adoption-hub/internal/domain"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS kv_items (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// Postgres реализует domain.KeyValueStore на основе pgxpool.
type Postgres struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPostgres создаёт адаптер и при необходимости создаёт таблицу.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool, namespace string) (*Postgres, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("ensure kv schema: %w", err)
	}
	return &Postgres{pool: pool, namespace: namespace}, nil
}

func (p *Postgres) connCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// GetItem возвращает значение.
func (p *Postgres) GetItem(key string) (string, bool, error) {
	ctx, cancel := p.connCtx()
	defer cancel()
	var value string
	err := p.pool.QueryRow(ctx, `SELECT value FROM kv_items WHERE namespace = $1 AND key = $2`, p.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv item: %w", err)
	}
	return value, true, nil
}

// SetItem перезаписывает значение.
func (p *Postgres) SetItem(key, value string) error {
	ctx, cancel := p.connCtx()
	defer cancel()
	_, err := p.pool.Exec(ctx, `
INSERT INTO kv_items (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		p.namespace, key, value)
	if err != nil {
		return fmt.Errorf("upsert kv item: %w", err)
	}
	return nil
}

// RemoveItem удаляет значение.
func (p *Postgres) RemoveItem(key string) error {
	ctx, cancel := p.connCtx()
	defer cancel()
	if _, err := p.pool.Exec(ctx, `DELETE FROM kv_items WHERE namespace = $1 AND key = $2`, p.namespace, key); err != nil {
		return fmt.Errorf("delete kv item: %w", err)
	}
	return nil
}

var _ domain.KeyValueStore = (*Postgres)(nil)
