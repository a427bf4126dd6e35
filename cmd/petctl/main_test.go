package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pet-adoption-hub/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	apiFlag, tokenFlag, storeFlag = "", "", ""
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseCartItems(t *testing.T) {
	items, err := parseCartItems([]string{"sku-1:2", "sku-2"})
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	want := []domain.CartItem{{ProductID: "sku-1", Quantity: 2}, {ProductID: "sku-2", Quantity: 1}}
	if len(items) != 2 || items[0] != want[0] || items[1] != want[1] {
		t.Fatalf("unexpected items: %+v", items)
	}
	for _, bad := range []string{":3", "sku:0", "sku:x"} {
		if _, err := parseCartItems([]string{bad}); err == nil {
			t.Fatalf("ожидали ошибку для %q", bad)
		}
	}
}

func TestSyncThenScore(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"petId":"p1","score":72},{"petId":"p2","score":40}]`)
	}))
	defer srv.Close()

	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "kv.db"))
	t.Setenv("APP_ENV", "test")

	if _, err := run(t, "recommendations", "sync", "--api", srv.URL, "--token", "tok"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if auth != "Bearer tok" {
		t.Fatalf("ожидали bearer токен, получили %q", auth)
	}

	out, err := run(t, "score", "p1")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got["score"] != float64(72) {
		t.Fatalf("ожидали 72, получили %v", got["score"])
	}

	if _, err := run(t, "score", "p3"); err == nil {
		t.Fatalf("ожидали ошибку для питомца без оценки")
	}
}

// unsetEnv снимает переменную на время теста и восстанавливает её после.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func TestDefaultStorePersistsBetweenRuns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"petId":"p1","score":72}]`)
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	unsetEnv(t, "STORE_DRIVER")
	unsetEnv(t, "SQLITE_PATH")
	t.Setenv("XDG_CACHE_HOME", cacheDir)
	t.Setenv("HOME", cacheDir)
	t.Setenv("APP_ENV", "test")

	if _, err := run(t, "recommendations", "sync", "--api", srv.URL, "--token", "tok"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	out, err := run(t, "score", "p1")
	if err != nil {
		t.Fatalf("score после sync: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got["score"] != float64(72) {
		t.Fatalf("ожидали 72, получили %v", got["score"])
	}
	path, err := defaultSQLitePath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("ожидали файл хранилища %s: %v", path, err)
	}
}

func TestAdoptKeepsCommasInReasons(t *testing.T) {
	var body struct {
		AIReasons []string `json:"aiReasons"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"req-1","petId":"p1","message":""}`)
	}))
	defer srv.Close()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "test")

	_, err := run(t, "adopt", "--pet", "p1", "--api", srv.URL, "--token", "tok",
		"--reason", "calm, good with kids", "--reason", "small")
	if err != nil {
		t.Fatalf("adopt: %v", err)
	}
	want := []string{"calm, good with kids", "small"}
	if len(body.AIReasons) != 2 || body.AIReasons[0] != want[0] || body.AIReasons[1] != want[1] {
		t.Fatalf("ожидали %v, получили %v", want, body.AIReasons)
	}
}

func TestDonationsCommands(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "kv.db"))
	t.Setenv("APP_ENV", "test")

	for i := 0; i < 2; i++ {
		if _, err := run(t, "donations", "mark", "camp-1"); err != nil {
			t.Fatalf("mark: %v", err)
		}
	}
	out, err := run(t, "donations", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(out), &ids); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(ids) != 1 || ids[0] != "camp-1" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestAPIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Pet not found"}`)
	}))
	defer srv.Close()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("APP_ENV", "test")

	_, err := run(t, "adopt", "--pet", "missing", "--api", srv.URL, "--token", "tok")
	if err == nil {
		t.Fatalf("ожидали ошибку")
	}
	if err.Error() != "create adoption request: Pet not found" {
		t.Fatalf("unexpected error: %v", err)
	}
}
