package usecase

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	leaguestandingmock "github.com/riskibarqy/season-tracker/internal/mocks/domain/leaguestanding"
	matchmock "github.com/riskibarqy/season-tracker/internal/mocks/domain/match"
	"github.com/stretchr/testify/mock"
)

var elc2025 = competition.Scope{CompetitionCode: "ELC", SeasonStartYear: 2025}

func scoreOf(v int) *int { return &v }

func finishedMatch(id int64, round int, home, away int64, hs, as int) match.Match {
	return match.Match{
		ID:              id,
		CompetitionCode: elc2025.CompetitionCode,
		SeasonStartYear: elc2025.SeasonStartYear,
		Round:           round,
		Date:            time.Date(2025, 8, 1+round*7, 15, 0, 0, 0, time.UTC),
		Status:          match.StatusFinished,
		HomeTeamID:      home,
		AwayTeamID:      away,
		HomeScore:       scoreOf(hs),
		AwayScore:       scoreOf(as),
	}
}

func TestRecomputeService_Recompute_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	matchRepo := matchmock.NewRepository(t)
	standingRepo := leaguestandingmock.NewRepository(t)
	service := NewRecomputeService(matchRepo, standingRepo, nil)

	malformed := finishedMatch(3, 2, 1, 1, 0, 0)
	live := finishedMatch(4, 3, 1, 2, 1, 1)
	live.Status = match.StatusInPlay
	matchRepo.
		On("ListByScope", mock.Anything, elc2025).
		Return([]match.Match{
			finishedMatch(1, 1, 1, 2, 2, 0),
			finishedMatch(2, 2, 2, 1, 1, 0),
			malformed,
			live,
		}, nil).
		Once()
	standingRepo.
		On("ReplaceScope",
			mock.Anything,
			elc2025,
			mock.MatchedBy(func(facts []leaguestanding.TeamMatchFact) bool { return len(facts) == 4 }),
			mock.MatchedBy(func(rows []leaguestanding.Standing) bool {
				if len(rows) != 4 {
					return false
				}
				for _, row := range rows {
					if row.Position <= 0 {
						return false
					}
				}
				return true
			}),
		).
		Return(nil).
		Once()

	got, err := service.Recompute(ctx, competition.Scope{CompetitionCode: " elc ", SeasonStartYear: 2025})
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got.Retained != 2 || got.SkippedCount != 1 || got.LatestRound != 2 || got.Standings != 4 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Excluded != 1 || got.InProgress != 1 {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got.Skipped[0].Reason != leaguestanding.SkipSameTeam {
		t.Fatalf("unexpected skip reason: %s", got.Skipped[0].Reason)
	}
}

func TestRecomputeService_Recompute_LoadFailureKeepsPreviousTables(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	standingRepo := leaguestandingmock.NewRepository(t)
	service := NewRecomputeService(matchRepo, standingRepo, nil)

	matchRepo.
		On("ListByScope", mock.Anything, elc2025).
		Return(nil, errors.New("connection refused")).
		Once()

	_, err := service.Recompute(context.Background(), elc2025)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	standingRepo.AssertNotCalled(t, "ReplaceScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecomputeService_Recompute_ReplaceFailure(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	standingRepo := leaguestandingmock.NewRepository(t)
	service := NewRecomputeService(matchRepo, standingRepo, nil)

	matchRepo.On("ListByScope", mock.Anything, elc2025).Return([]match.Match{finishedMatch(1, 1, 1, 2, 0, 0)}, nil).Once()
	standingRepo.On("ReplaceScope", mock.Anything, elc2025, mock.Anything, mock.Anything).Return(errors.New("tx aborted")).Once()

	_, err := service.Recompute(context.Background(), elc2025)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRecomputeService_Recompute_InvalidScope(t *testing.T) {
	t.Parallel()

	service := NewRecomputeService(matchmock.NewRepository(t), leaguestandingmock.NewRepository(t), nil)
	_, err := service.Recompute(context.Background(), competition.Scope{SeasonStartYear: 2025})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecomputeService_Recompute_SerializesSameScope(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	standingRepo := leaguestandingmock.NewRepository(t)
	service := NewRecomputeService(matchRepo, standingRepo, nil)

	var (
		mu     sync.Mutex
		events []string
	)
	record := func(event string) {
		mu.Lock()
		events = append(events, event)
		mu.Unlock()
	}

	firstReplaceEntered := make(chan struct{})
	releaseReplace := make(chan struct{})
	var replaceCalls atomic.Int32

	matchRepo.
		On("ListByScope", mock.Anything, elc2025).
		Run(func(mock.Arguments) { record("list") }).
		Return([]match.Match{finishedMatch(1, 1, 1, 2, 2, 0)}, nil).
		Twice()
	standingRepo.
		On("ReplaceScope", mock.Anything, elc2025, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			if replaceCalls.Add(1) == 1 {
				close(firstReplaceEntered)
				<-releaseReplace
			}
			record("replace")
		}).
		Return(nil).
		Twice()

	errs := make(chan error, 2)
	go func() {
		_, err := service.Recompute(context.Background(), elc2025)
		errs <- err
	}()

	select {
	case <-firstReplaceEntered:
	case <-time.After(2 * time.Second):
		t.Fatalf("first recompute never reached replace")
	}

	go func() {
		_, err := service.Recompute(context.Background(), elc2025)
		errs <- err
	}()

	// the second run must wait on the scope lock instead of loading matches
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	listed := len(events)
	mu.Unlock()
	if listed != 1 {
		close(releaseReplace)
		t.Fatalf("second recompute ran while the first held the scope: events=%v", events)
	}

	close(releaseReplace)
	for range 2 {
		if err := <-errs; err != nil {
			t.Fatalf("recompute: %v", err)
		}
	}

	want := []string{"list", "replace", "list", "replace"}
	if !slices.Equal(events, want) {
		t.Fatalf("unexpected call order: %v", events)
	}
}

func TestRecomputeService_Recompute_DifferentScopesRunConcurrently(t *testing.T) {
	t.Parallel()

	pl2025 := competition.Scope{CompetitionCode: "PL", SeasonStartYear: 2025}

	matchRepo := matchmock.NewRepository(t)
	standingRepo := leaguestandingmock.NewRepository(t)
	service := NewRecomputeService(matchRepo, standingRepo, nil)

	entered := make(chan competition.Scope, 2)
	release := make(chan struct{})

	matchRepo.On("ListByScope", mock.Anything, mock.Anything).Return([]match.Match{}, nil).Twice()
	standingRepo.
		On("ReplaceScope", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			entered <- args.Get(1).(competition.Scope)
			<-release
		}).
		Return(nil).
		Twice()

	errs := make(chan error, 2)
	for _, scope := range []competition.Scope{elc2025, pl2025} {
		go func() {
			_, err := service.Recompute(context.Background(), scope)
			errs <- err
		}()
	}

	// both replaces are held open at once; a shared lock would stall here
	seen := make(map[string]bool, 2)
	for range 2 {
		select {
		case scope := <-entered:
			seen[scope.Key()] = true
		case <-time.After(2 * time.Second):
			close(release)
			t.Fatalf("scopes did not run concurrently, entered=%v", seen)
		}
	}
	close(release)

	for range 2 {
		if err := <-errs; err != nil {
			t.Fatalf("recompute: %v", err)
		}
	}
	if !seen[elc2025.Key()] || !seen[pl2025.Key()] {
		t.Fatalf("unexpected scopes: %v", seen)
	}
}

type recordingStandingRepo struct {
	leaguestanding.Repository

	mu       sync.Mutex
	replaced map[string]int
}

func (r *recordingStandingRepo) ReplaceScope(_ context.Context, scope competition.Scope, _ []leaguestanding.TeamMatchFact, standings []leaguestanding.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.replaced == nil {
		r.replaced = make(map[string]int)
	}
	r.replaced[scope.Key()] = len(standings)
	return nil
}

type scopedMatchRepo struct {
	match.Repository

	byScope map[string][]match.Match
	fail    map[string]error
}

func (r *scopedMatchRepo) ListByScope(_ context.Context, scope competition.Scope) ([]match.Match, error) {
	if err := r.fail[scope.Key()]; err != nil {
		return nil, err
	}
	return r.byScope[scope.Key()], nil
}

func TestRecomputeService_RecomputeMany(t *testing.T) {
	t.Parallel()

	elc2024 := competition.Scope{CompetitionCode: "ELC", SeasonStartYear: 2024}
	pl2025 := competition.Scope{CompetitionCode: "PL", SeasonStartYear: 2025}

	older := finishedMatch(10, 1, 3, 4, 1, 2)
	older.SeasonStartYear = 2024

	matchRepo := &scopedMatchRepo{
		byScope: map[string][]match.Match{
			elc2025.Key(): {finishedMatch(1, 1, 1, 2, 2, 0)},
			elc2024.Key(): {older},
		},
		fail: map[string]error{pl2025.Key(): errors.New("timeout")},
	}
	standingRepo := &recordingStandingRepo{}
	service := NewRecomputeService(matchRepo, standingRepo, nil)

	got, err := service.RecomputeMany(context.Background(), []competition.Scope{elc2025, pl2025, elc2024, {CompetitionCode: "elc", SeasonStartYear: 2025}}, 8)
	if err != nil {
		t.Fatalf("recompute many: %v", err)
	}
	if got.ScopeCount != 3 || got.WorkerCount != 3 {
		t.Fatalf("unexpected batch sizing: %+v", got)
	}
	if got.SuccessCount != 2 || got.FailedCount != 1 {
		t.Fatalf("unexpected counts: success=%d failed=%d", got.SuccessCount, got.FailedCount)
	}
	if got.Scopes[0].SeasonStartYear != 2024 || got.Scopes[2].CompetitionCode != "PL" {
		t.Fatalf("unexpected ordering: %+v", got.Scopes)
	}
	if got.Scopes[2].Status != recomputeStatusFailed || got.Scopes[2].Message == "" {
		t.Fatalf("expected failed PL row, got %+v", got.Scopes[2])
	}
	if standingRepo.replaced[elc2025.Key()] != 2 || standingRepo.replaced[elc2024.Key()] != 2 {
		t.Fatalf("unexpected replaced scopes: %v", standingRepo.replaced)
	}
}

func TestNormalizeRecomputeWorkerCount(t *testing.T) {
	tests := []struct {
		requested int
		tasks     int
		want      int
	}{
		{requested: 0, tasks: 10, want: defaultRecomputeWorkers},
		{requested: 100, tasks: 100, want: maxRecomputeWorkers},
		{requested: 8, tasks: 2, want: 2},
		{requested: -1, tasks: 1, want: 1},
	}
	for _, tc := range tests {
		if got := normalizeRecomputeWorkerCount(tc.requested, tc.tasks); got != tc.want {
			t.Fatalf("normalizeRecomputeWorkerCount(%d, %d)=%d want=%d", tc.requested, tc.tasks, got, tc.want)
		}
	}
}
