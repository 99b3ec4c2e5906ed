package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

func sqliteConfig(t *testing.T) *config.App {
	t.Helper()
	t.Setenv("STORE_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", ":memory:")
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	cfg.Env = "production"
	return cfg
}

func TestNewServesSeededSQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.close)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_questions":19`)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewWithRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := sqliteConfig(t)
	cfg.Redis.Addr = mr.Addr()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.close)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, mr.Exists("trivia:categories"))

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	mr.Close()
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestOpenStoreWithoutSeed(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Seed = false

	backend, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(backend.Close)

	categories, err := backend.Store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.Equal(t, config.DriverSQLite, backend.Name)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Store.Driver = "mongo"

	_, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
