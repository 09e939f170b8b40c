package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/season-tracker/internal/config"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/usecase"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		DefaultScope:       memory.SeedScope,
		FormLength:         5,
		RecomputeWorkers:   2,
		InternalJobToken:   "secret",
	}
}

func TestBuild_MemoryStorageServesSeedScope(t *testing.T) {
	ctx := context.Background()
	container, err := Build(ctx, memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Close()) })

	table, err := container.Standings.LatestTable(ctx, memory.SeedScope)
	require.NoError(t, err)
	require.Equal(t, 2, table.Round)
	require.Len(t, table.Rows, 4)

	_, err = container.Ingestion.Refresh(ctx, usecase.RefreshInput{Scope: memory.SeedScope})
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestBuild_UnsupportedStorage(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, err := Build(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := memoryConfig()
	container, err := Build(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	srv, err := NewHTTPServer(cfg, container, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	cfg.HTTPAddr = ""
	_, err = NewHTTPServer(cfg, container, nil)
	require.Error(t, err)
}

func TestContainer_CloseJoinsErrors(t *testing.T) {
	var order []string
	container := &Container{closers: []func() error{
		func() error { order = append(order, "db"); return errors.New("db close") },
		func() error { order = append(order, "cache"); return nil },
	}}

	err := container.Close()
	require.EqualError(t, err, "db close")
	require.Equal(t, []string{"cache", "db"}, order)
	require.NoError(t, container.Close())
}

func TestBuild_DefaultScopeIsQueryable(t *testing.T) {
	cfg := memoryConfig()
	cfg.DefaultScope = competition.Scope{CompetitionCode: "PL", SeasonStartYear: 2025}

	container, err := Build(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	table, err := container.Standings.LatestTable(context.Background(), cfg.DefaultScope)
	require.NoError(t, err)
	require.Empty(t, table.Rows)
}
