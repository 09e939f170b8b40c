package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
)

const (
	recomputeStatusSuccess = "success"
	recomputeStatusFailed  = "failed"

	defaultRecomputeWorkers = 4
	maxRecomputeWorkers     = 16
)

type RecomputeResult struct {
	CompetitionCode string                        `json:"competition_code"`
	SeasonStartYear int                           `json:"season_start_year"`
	Status          string                        `json:"status"`
	Retained        int                           `json:"retained_matches"`
	Excluded        int                           `json:"excluded_matches"`
	InProgress      int                           `json:"in_progress_matches"`
	Skipped         []leaguestanding.SkippedMatch `json:"-"`
	SkippedCount    int                           `json:"skipped_matches"`
	Facts           int                           `json:"facts"`
	Standings       int                           `json:"standings"`
	LatestRound     int                           `json:"latest_round"`
	DurationMs      int64                         `json:"duration_ms"`
	Message         string                        `json:"message,omitempty"`
}

type RecomputeBatchResult struct {
	ScopeCount   int               `json:"scope_count"`
	WorkerCount  int               `json:"worker_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Scopes       []RecomputeResult `json:"scopes"`
}

// RecomputeService rebuilds every derived table of a scope from raw matches.
type RecomputeService struct {
	matchRepo    match.Repository
	standingRepo leaguestanding.Repository
	logger       *logging.Logger
	locks        sync.Map
}

func NewRecomputeService(
	matchRepo match.Repository,
	standingRepo leaguestanding.Repository,
	logger *logging.Logger,
) *RecomputeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecomputeService{
		matchRepo:    matchRepo,
		standingRepo: standingRepo,
		logger:       logger,
	}
}

// Recompute runs a full rebuild for one scope. Runs on the same scope are
// serialized; on failure the previously stored tables stay untouched.
func (s *RecomputeService) Recompute(ctx context.Context, scope competition.Scope) (RecomputeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.Recompute", scope)
	defer span.End()

	scope, err := normalizeScope(scope)
	if err != nil {
		return RecomputeResult{}, err
	}

	unlock := s.lockScope(scope)
	defer unlock()

	start := time.Now()
	matches, err := s.matchRepo.ListByScope(ctx, scope)
	if err != nil {
		return RecomputeResult{}, unavailable(err, "list matches scope=%s", scope)
	}

	built := leaguestanding.BuildFacts(scope, matches)
	for _, skipped := range built.Skipped {
		s.logger.WarnContext(ctx, "skipping malformed match",
			"scope", scope.Key(),
			"match_id", skipped.MatchID,
			"reason", string(skipped.Reason),
		)
	}
	if len(built.InProgress) > 0 {
		s.logger.InfoContext(ctx, "excluding matches in progress",
			"scope", scope.Key(),
			"count", len(built.InProgress),
			"match_ids", built.InProgress,
		)
	}

	standings := leaguestanding.RankRounds(leaguestanding.Aggregate(built.Facts))
	if err := s.standingRepo.ReplaceScope(ctx, scope, built.Facts, standings); err != nil {
		return RecomputeResult{}, unavailable(err, "replace standings scope=%s", scope)
	}

	latest, _ := leaguestanding.LatestRound(standings)
	result := RecomputeResult{
		CompetitionCode: scope.CompetitionCode,
		SeasonStartYear: scope.SeasonStartYear,
		Status:          recomputeStatusSuccess,
		Retained:        built.Retained,
		Excluded:        built.Excluded,
		InProgress:      len(built.InProgress),
		Skipped:         built.Skipped,
		SkippedCount:    len(built.Skipped),
		Facts:           len(built.Facts),
		Standings:       len(standings),
		LatestRound:     latest,
		DurationMs:      time.Since(start).Milliseconds(),
	}

	s.logger.InfoContext(ctx, "standings recomputed",
		"scope", scope.Key(),
		"matches", len(matches),
		"retained", result.Retained,
		"excluded", result.Excluded,
		"in_progress", result.InProgress,
		"skipped", result.SkippedCount,
		"standings", result.Standings,
		"latest_round", result.LatestRound,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// RecomputeMany rebuilds several scopes in parallel. A failing scope is
// reported in its row and does not stop the others.
func (s *RecomputeService) RecomputeMany(ctx context.Context, scopes []competition.Scope, maxWorkers int) (RecomputeBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecomputeService.RecomputeMany")
	defer span.End()

	targets := dedupeScopes(scopes)
	if len(targets) == 0 {
		return RecomputeBatchResult{}, fmt.Errorf("%w: at least one scope is required", ErrInvalidInput)
	}

	workerCount := normalizeRecomputeWorkerCount(maxWorkers, len(targets))
	batch := RecomputeBatchResult{
		ScopeCount:  len(targets),
		WorkerCount: workerCount,
		Scopes:      make([]RecomputeResult, 0, len(targets)),
	}

	results := make(chan RecomputeResult, len(targets))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecomputeBatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, scope := range targets {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row, err := s.Recompute(ctx, scope)
			if err != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "recompute scope failed", "scope", scope.Key(), "error", err)
				results <- RecomputeResult{
					CompetitionCode: competition.NormalizeCode(scope.CompetitionCode),
					SeasonStartYear: scope.SeasonStartYear,
					Status:          recomputeStatusFailed,
					DurationMs:      time.Since(start).Milliseconds(),
					Message:         err.Error(),
				}
				return
			}
			successCount.Add(1)
			results <- row
		}); err != nil {
			workers.Done()
			return RecomputeBatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		batch.Scopes = append(batch.Scopes, row)
	}
	sort.SliceStable(batch.Scopes, func(i, j int) bool {
		if batch.Scopes[i].CompetitionCode != batch.Scopes[j].CompetitionCode {
			return batch.Scopes[i].CompetitionCode < batch.Scopes[j].CompetitionCode
		}
		return batch.Scopes[i].SeasonStartYear < batch.Scopes[j].SeasonStartYear
	})

	batch.SuccessCount = int(successCount.Load())
	batch.FailedCount = int(failedCount.Load())
	return batch, nil
}

func (s *RecomputeService) lockScope(scope competition.Scope) func() {
	value, _ := s.locks.LoadOrStore(scope.Key(), &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func dedupeScopes(scopes []competition.Scope) []competition.Scope {
	seen := make(map[string]struct{}, len(scopes))
	out := make([]competition.Scope, 0, len(scopes))
	for _, scope := range scopes {
		scope.CompetitionCode = competition.NormalizeCode(scope.CompetitionCode)
		if _, ok := seen[scope.Key()]; ok {
			continue
		}
		seen[scope.Key()] = struct{}{}
		out = append(out, scope)
	}
	return out
}

func normalizeRecomputeWorkerCount(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultRecomputeWorkers
	}
	if workers > maxRecomputeWorkers {
		workers = maxRecomputeWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	if workers <= 0 {
		workers = 1
	}
	return workers
}
