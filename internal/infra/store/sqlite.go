package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"pet-adoption-hub/internal/domain"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_items (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, key)
)`

// OpenSQLite открывает (или создаёт) файл базы и включает WAL.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLite реализует domain.KeyValueStore поверх локального файла.
type SQLite struct {
	db        *sql.DB
	namespace string
}

// NewSQLite создаёт хранилище и таблицу kv_items.
func NewSQLite(db *sql.DB, namespace string) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("ensure kv schema: %w", err)
	}
	return &SQLite{db: db, namespace: namespace}, nil
}

// GetItem возвращает значение.
func (s *SQLite) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_items WHERE namespace = ? AND key = ?`, s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv item: %w", err)
	}
	return value, true, nil
}

// SetItem перезаписывает значение.
func (s *SQLite) SetItem(key, value string) error {
	_, err := s.db.Exec(`
INSERT INTO kv_items (namespace, key, value, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("upsert kv item: %w", err)
	}
	return nil
}

// RemoveItem удаляет значение.
func (s *SQLite) RemoveItem(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_items WHERE namespace = ? AND key = ?`, s.namespace, key); err != nil {
		return fmt.Errorf("delete kv item: %w", err)
	}
	return nil
}

var _ domain.KeyValueStore = (*SQLite)(nil)
