package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/ingestrun"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
	"github.com/riskibarqy/season-tracker/internal/platform/id"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
)

// MatchDataProvider is the upstream source of raw teams and matches.
type MatchDataProvider interface {
	FetchTeams(ctx context.Context, scope competition.Scope) ([]team.Team, error)
	FetchMatches(ctx context.Context, scope competition.Scope) ([]match.Match, error)
}

type scopeRecomputer interface {
	Recompute(ctx context.Context, scope competition.Scope) (RecomputeResult, error)
}

type RefreshInput struct {
	Scope       competition.Scope
	FullRefresh bool
	// SkipRecompute stops after the raw upsert.
	SkipRecompute bool
}

type RefreshResult struct {
	RunID     string           `json:"run_id"`
	Teams     int              `json:"teams"`
	Matches   int              `json:"matches"`
	Recompute *RecomputeResult `json:"recompute,omitempty"`
}

// IngestionService pulls raw data from the provider and rebuilds standings.
type IngestionService struct {
	provider   MatchDataProvider
	teamRepo   team.Repository
	matchRepo  match.Repository
	runRepo    ingestrun.Repository
	recomputer scopeRecomputer
	ids        id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewIngestionService(
	provider MatchDataProvider,
	teamRepo team.Repository,
	matchRepo match.Repository,
	runRepo ingestrun.Repository,
	recomputer scopeRecomputer,
	ids id.Generator,
	logger *logging.Logger,
) *IngestionService {
	if ids == nil {
		ids = id.NewTimeOrderedGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		provider:   provider,
		teamRepo:   teamRepo,
		matchRepo:  matchRepo,
		runRepo:    runRepo,
		recomputer: recomputer,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

// Refresh records an ingest run, upserts provider data for the scope and
// then recomputes it. A failed run is audited with the truncated error.
func (s *IngestionService) Refresh(ctx context.Context, input RefreshInput) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Refresh", input.Scope)
	defer span.End()

	scope, err := normalizeScope(input.Scope)
	if err != nil {
		return RefreshResult{}, err
	}
	if s.provider == nil {
		return RefreshResult{}, fmt.Errorf("%w: match data provider is disabled", ErrDependencyUnavailable)
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return RefreshResult{}, fmt.Errorf("generate ingest run id: %w", err)
	}
	if err := s.runRepo.Start(ctx, ingestrun.Run{
		ID:        runID,
		Scope:     scope,
		Status:    ingestrun.StatusStarted,
		StartedAt: s.now().UTC(),
	}); err != nil {
		return RefreshResult{}, fmt.Errorf("start ingest run: %w", err)
	}

	result, err := s.ingest(ctx, scope, input.FullRefresh)
	result.RunID = runID
	if err != nil {
		s.finishRun(ctx, runID, ingestrun.StatusFailed, err.Error())
		s.logger.ErrorContext(ctx, "ingest run failed", "run_id", runID, "scope", scope.Key(), "error", err)
		return result, err
	}
	s.finishRun(ctx, runID, ingestrun.StatusSuccess, fmt.Sprintf("teams=%d, matches=%d", result.Teams, result.Matches))
	s.logger.InfoContext(ctx, "ingest run finished",
		"run_id", runID,
		"scope", scope.Key(),
		"teams", result.Teams,
		"matches", result.Matches,
		"full_refresh", input.FullRefresh,
	)

	if input.SkipRecompute || s.recomputer == nil {
		return result, nil
	}
	recomputed, err := s.recomputer.Recompute(ctx, scope)
	if err != nil {
		return result, fmt.Errorf("recompute after ingest: %w", err)
	}
	result.Recompute = &recomputed
	return result, nil
}

func (s *IngestionService) ListRuns(ctx context.Context, limit int) ([]ingestrun.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs, err := s.runRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingest runs: %w", err)
	}
	return runs, nil
}

func (s *IngestionService) ingest(ctx context.Context, scope competition.Scope, fullRefresh bool) (RefreshResult, error) {
	var (
		teams   []team.Team
		matches []match.Match
	)

	fetch := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		items, err := s.provider.FetchTeams(ctx, scope)
		if err != nil {
			return fmt.Errorf("fetch teams: %w", err)
		}
		teams = items
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		items, err := s.provider.FetchMatches(ctx, scope)
		if err != nil {
			return fmt.Errorf("fetch matches: %w", err)
		}
		matches = items
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return RefreshResult{}, unavailable(err, "fetch provider data scope=%s", scope)
	}

	teams = cleanTeams(teams)
	matches = cleanMatches(scope, matches)

	if err := s.teamRepo.UpsertTeams(ctx, teams); err != nil {
		return RefreshResult{}, fmt.Errorf("upsert teams: %w", err)
	}
	if fullRefresh {
		if err := s.matchRepo.DeleteByScope(ctx, scope); err != nil {
			return RefreshResult{}, fmt.Errorf("delete scope matches: %w", err)
		}
	}
	if err := s.matchRepo.UpsertMatches(ctx, matches); err != nil {
		return RefreshResult{}, fmt.Errorf("upsert matches: %w", err)
	}

	return RefreshResult{Teams: len(teams), Matches: len(matches)}, nil
}

func (s *IngestionService) finishRun(ctx context.Context, runID, status, details string) {
	// audit failures must not mask the ingest outcome
	if err := s.runRepo.Finish(ctx, runID, status, ingestrun.TruncateDetails(details), s.now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "finish ingest run failed", "run_id", runID, "status", status, "error", err)
	}
}

func cleanTeams(items []team.Team) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		item.Name = strings.TrimSpace(item.Name)
		item.ShortName = strings.TrimSpace(item.ShortName)
		item.Abbreviation = strings.TrimSpace(item.Abbreviation)
		if item.ID <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out
}

// cleanMatches stamps the scope on every row. Rows without an id cannot be
// upserted and are dropped here; all other validation belongs to the fact
// builder so malformed rows stay visible in the raw store.
func cleanMatches(scope competition.Scope, items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		item.CompetitionCode = scope.CompetitionCode
		item.SeasonStartYear = scope.SeasonStartYear
		item.Status = match.NormalizeStatus(item.Status)
		out = append(out, item)
	}
	return out
}
