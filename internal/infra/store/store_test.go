package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"pet-adoption-hub/internal/domain"
	"pet-adoption-hub/internal/infra/config"
	"pet-adoption-hub/internal/infra/db"
)

func exerciseStore(t *testing.T, s domain.KeyValueStore) {
	t.Helper()

	_, ok, err := s.GetItem("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetItem("ai-match-scores", `{"savedAt":1}`))
	value, ok, err := s.GetItem("ai-match-scores")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"savedAt":1}`, value)

	require.NoError(t, s.SetItem("ai-match-scores", `{"savedAt":2}`))
	value, _, err = s.GetItem("ai-match-scores")
	require.NoError(t, err)
	require.Equal(t, `{"savedAt":2}`, value)

	require.NoError(t, s.RemoveItem("ai-match-scores"))
	_, ok, err = s.GetItem("ai-match-scores")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.RemoveItem("ai-match-scores"))
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory(0))
}

func TestMemoryQuota(t *testing.T) {
	m := NewMemory(10)
	require.NoError(t, m.SetItem("k", "12345"))
	require.ErrorIs(t, m.SetItem("k2", "123456789"), domain.ErrQuotaExceeded)

	// перезапись того же ключа учитывает освобождённое место
	require.NoError(t, m.SetItem("k", "123456789"))
	require.NoError(t, m.RemoveItem("k"))
	require.NoError(t, m.SetItem("k2", "12345678"))
}

func TestDisabled(t *testing.T) {
	var s Disabled
	_, _, err := s.GetItem("k")
	require.ErrorIs(t, err, domain.ErrStorageDisabled)
	require.ErrorIs(t, s.SetItem("k", "v"), domain.ErrStorageDisabled)
	require.ErrorIs(t, s.RemoveItem("k"), domain.ErrStorageDisabled)
}

func TestSQLite(t *testing.T) {
	conn, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	s, err := NewSQLite(conn, "https://pets.example.com")
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestSQLiteNamespaces(t *testing.T) {
	conn, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	a, err := NewSQLite(conn, "origin-a")
	require.NoError(t, err)
	b, err := NewSQLite(conn, "origin-b")
	require.NoError(t, err)

	require.NoError(t, a.SetItem("donated-campaigns", `["c1"]`))
	_, ok, err := b.GetItem("donated-campaigns")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedis(client, "origin-a")
	exerciseStore(t, s)

	require.NoError(t, s.SetItem("donated-campaigns", `["c1"]`))
	raw, err := mr.Get("origin-a:donated-campaigns")
	require.NoError(t, err)
	require.Equal(t, `["c1"]`, raw)
	require.False(t, mr.Exists("donated-campaigns"))
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_PG_DSN not set")
	}
	pool, err := db.Connect(dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s, err := NewPostgres(context.Background(), pool, "test-"+t.Name())
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	var cfg config.AppConfig
	cfg.Store.Driver = "memory"
	s, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()
	require.IsType(t, &Memory{}, s)

	cfg.Store.Driver = "sqlite"
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "kv.db")
	s, closeSQLite, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeSQLite()
	require.IsType(t, &SQLite{}, s)

	mr := miniredis.RunT(t)
	cfg.Store.Driver = "redis"
	cfg.RedisAddr = mr.Addr()
	s, closeRedis, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeRedis()
	require.IsType(t, &Redis{}, s)

	cfg.Store.Driver = "disabled"
	s, _, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, Disabled{}, s)
}

func TestOpenErrors(t *testing.T) {
	cases := map[string]config.AppConfig{}

	var unknown config.AppConfig
	unknown.Store.Driver = "etcd"
	cases["unknown driver"] = unknown

	var sqliteNoPath config.AppConfig
	sqliteNoPath.Store.Driver = "sqlite"
	cases["sqlite without path"] = sqliteNoPath

	var redisNoAddr config.AppConfig
	redisNoAddr.Store.Driver = "redis"
	cases["redis without addr"] = redisNoAddr

	var pgNoDSN config.AppConfig
	pgNoDSN.Store.Driver = "postgres"
	cases["postgres without dsn"] = pgNoDSN

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, closeFn, err := Open(context.Background(), cfg)
			require.Error(t, err)
			closeFn()
		})
	}
}
