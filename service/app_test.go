package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio/app/config"
	"portfolio/app/logger"
	"portfolio/app/models"
	"portfolio/app/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.InMemory = true
	cfg.SetDefaults()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	return cfg
}

func TestNewAppBadger(t *testing.T) {
	app, err := NewApp(testConfig(), logger.NewNop())
	require.NoError(t, err)

	app.Content.LoadAll(context.Background())

	rw := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rw, httptest.NewRequest("GET", "/api/health", nil))
	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Contains(t, rw.Body.String(), `"status":"ok"`)

	require.NoError(t, app.Close())
}

func TestNewAppRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Storage.Backend = config.StorageRedis
	cfg.Redis.Address = mr.Addr()

	app, err := NewApp(cfg, logger.NewNop())
	require.NoError(t, err)

	_, err = app.Comments.AddComment(models.CommentForm{
		Author:  "Grace",
		Email:   "grace@example.com",
		Content: "Redis-backed comment here",
	})
	require.NoError(t, err)
	require.NoError(t, app.Close())

	assert.True(t, mr.Exists(repositories.CommentsKey))
}

func TestNewAppRedisUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.Storage.Backend = config.StorageRedis
	cfg.Redis.Address = "127.0.0.1:1"

	_, err := NewApp(cfg, logger.NewNop())
	assert.Error(t, err)
}

func TestNewAppDatabaseUnavailableFallsBackToSeed(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Enabled = true
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Database.Database = "portfolio"

	app, err := NewApp(cfg, logger.NewNop())
	require.NoError(t, err)
	defer app.Close()

	app.Content.LoadAll(context.Background())
	assert.Len(t, app.Content.Skills(), 12)
}

func TestAppRunStopsOnCancel(t *testing.T) {
	app, err := NewApp(testConfig(), logger.NewNop())
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
