package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/courtsplit/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:         "dev",
		HTTPAddr:       ":8084",
		JWTSecret:      "test-secret",
		JWTIssuer:      "test-issuer",
		CacheTTLBill:   time.Minute,
		LateCancelFine: 100,
		EventLocation:  time.UTC,
	}
}

func TestNewApp(t *testing.T) {
	t.Run("memory_store_without_db", func(t *testing.T) {
		app, err := NewApp(testConfig(), nil)
		require.NoError(t, err)
		defer app.Close()

		assert.Equal(t, ":8084", app.Server.Addr)
		assert.NotNil(t, app.Server.Handler)
		assert.Nil(t, app.Cache)
		assert.Nil(t, app.Publisher)

		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/session/v1/events", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("postgres_store_with_db", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()

		app, err := NewApp(testConfig(), db)
		require.NoError(t, err)
		defer app.Close()
		assert.Same(t, db, app.DB)

		mock.ExpectPing()
		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest("GET", "/readyz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"postgres":"ok"`)
	})

	t.Run("redis_cache_when_configured", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig()
		cfg.RedisURL = "redis://" + mr.Addr()

		app, err := NewApp(cfg, nil)
		require.NoError(t, err)
		defer app.Close()
		assert.NotNil(t, app.Cache)
	})

	t.Run("unreachable_redis_fails", func(t *testing.T) {
		cfg := testConfig()
		cfg.RedisURL = "redis://127.0.0.1:1"
		_, err := NewApp(cfg, nil)
		assert.Error(t, err)
	})
}

func TestSysClock_Now(t *testing.T) {
	assert.Equal(t, "UTC", sysClock{}.Now().Location().String())
}
