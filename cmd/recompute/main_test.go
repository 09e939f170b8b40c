package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/season-tracker/internal/config"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
)

func TestParseScopes(t *testing.T) {
	scopes, err := parseScopes([]byte("scopes:\n  - competition: elc\n    season: 2025\n  - competition: PL\n    season: 2024\n"))
	require.NoError(t, err)
	require.Equal(t, []competition.Scope{
		{CompetitionCode: "ELC", SeasonStartYear: 2025},
		{CompetitionCode: "PL", SeasonStartYear: 2024},
	}, scopes)

	_, err = parseScopes([]byte("scopes: []\n"))
	require.Error(t, err)

	_, err = parseScopes([]byte("scopes:\n  - competition: ELC\n"))
	require.ErrorContains(t, err, "scope #1")
}

func TestParseScopeList(t *testing.T) {
	scopes, err := parseScopeList(" ELC:2025, ,pl:2024")
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	require.Equal(t, "PL", scopes[1].CompetitionCode)

	_, err = parseScopeList("ELC-2025")
	require.Error(t, err)
	_, err = parseScopeList("ELC:soon")
	require.Error(t, err)
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-scopes", "ELC:2025", "-workers", "3", "-ingest", "-full-refresh"})
	require.NoError(t, err)
	require.True(t, opts.ingest)
	require.True(t, opts.fullRefresh)
	require.Equal(t, 3, opts.workers)

	_, err = parseFlags([]string{"-full-refresh"})
	require.Error(t, err)
}

func TestResolveScopes_FileAndFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scopes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scopes:\n  - competition: ELC\n    season: 2024\n"), 0o600))

	scopes, err := resolveScopes(options{scopesFile: path, scopes: "PL:2025"}, memory.SeedScope)
	require.NoError(t, err)
	require.Len(t, scopes, 2)

	fallback, err := resolveScopes(options{}, memory.SeedScope)
	require.NoError(t, err)
	require.Equal(t, []competition.Scope{memory.SeedScope}, fallback)
}

func TestRun_MemoryStorage(t *testing.T) {
	cfg := config.Config{
		StorageDriver:    config.StorageMemory,
		DefaultScope:     memory.SeedScope,
		FormLength:       5,
		RecomputeWorkers: 2,
	}

	var out bytes.Buffer
	err := run(context.Background(), cfg, options{}, logging.NewNop(), &out)
	require.NoError(t, err)

	var rep report
	require.NoError(t, sonic.Unmarshal(out.Bytes(), &rep))
	require.Equal(t, 1, rep.Recompute.SuccessCount)
	require.Equal(t, 2, rep.Recompute.Scopes[0].LatestRound)
	require.Empty(t, rep.Refreshed)
}

func TestRun_IngestWithoutProviderFails(t *testing.T) {
	cfg := config.Config{StorageDriver: config.StorageMemory, DefaultScope: memory.SeedScope}

	err := run(context.Background(), cfg, options{ingest: true}, logging.NewNop(), &bytes.Buffer{})
	require.ErrorContains(t, err, "refresh ELC:2025")
}
