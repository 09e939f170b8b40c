package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
)

type scopeSnapshot struct {
	facts     []leaguestanding.TeamMatchFact
	standings []leaguestanding.Standing
}

// LeagueStandingRepository keeps one immutable snapshot per scope and swaps
// it whole on replace, so readers never see a half-written scope.
type LeagueStandingRepository struct {
	mu     sync.RWMutex
	scopes map[competition.Scope]*scopeSnapshot
}

func NewLeagueStandingRepository() *LeagueStandingRepository {
	return &LeagueStandingRepository{scopes: make(map[competition.Scope]*scopeSnapshot)}
}

func (r *LeagueStandingRepository) ReplaceScope(_ context.Context, scope competition.Scope, facts []leaguestanding.TeamMatchFact, standings []leaguestanding.Standing) error {
	next := &scopeSnapshot{
		facts:     slices.Clone(facts),
		standings: slices.Clone(standings),
	}

	r.mu.Lock()
	r.scopes[scope] = next
	r.mu.Unlock()
	return nil
}

func (r *LeagueStandingRepository) ListStandings(_ context.Context, scope competition.Scope) ([]leaguestanding.Standing, error) {
	snapshot := r.snapshot(scope)
	if snapshot == nil {
		return []leaguestanding.Standing{}, nil
	}
	return slices.Clone(snapshot.standings), nil
}

func (r *LeagueStandingRepository) ListStandingsByRound(_ context.Context, scope competition.Scope, round int) ([]leaguestanding.Standing, error) {
	out := make([]leaguestanding.Standing, 0, 32)
	snapshot := r.snapshot(scope)
	if snapshot == nil {
		return out, nil
	}
	for _, row := range snapshot.standings {
		if row.Round == round {
			out = append(out, row)
		}
	}
	return out, nil
}

// ListLatestStandings scans the current snapshot on every call.
func (r *LeagueStandingRepository) ListLatestStandings(_ context.Context, scope competition.Scope) ([]leaguestanding.Standing, error) {
	snapshot := r.snapshot(scope)
	if snapshot == nil {
		return []leaguestanding.Standing{}, nil
	}
	latest, ok := leaguestanding.LatestRound(snapshot.standings)
	if !ok {
		return []leaguestanding.Standing{}, nil
	}
	out := make([]leaguestanding.Standing, 0, 32)
	for _, row := range snapshot.standings {
		if row.Round == latest {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *LeagueStandingRepository) ListFacts(_ context.Context, scope competition.Scope, teamID int64) ([]leaguestanding.TeamMatchFact, error) {
	out := make([]leaguestanding.TeamMatchFact, 0, 64)
	snapshot := r.snapshot(scope)
	if snapshot == nil {
		return out, nil
	}
	for _, f := range snapshot.facts {
		if teamID > 0 && f.TeamID != teamID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *LeagueStandingRepository) snapshot(scope competition.Scope) *scopeSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scopes[scope]
}
