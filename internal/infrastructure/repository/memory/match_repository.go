package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[int64]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[int64]match.Match, len(matches))
	for _, item := range matches {
		byID[item.ID] = item
	}
	return &MatchRepository{matches: byID}
}

func (r *MatchRepository) ListByScope(_ context.Context, scope competition.Scope) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, 64)
	for _, item := range r.matches {
		if item.Scope() == scope {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b match.Match) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// UpsertMatches overwrites by id; the latest ingested row wins.
func (r *MatchRepository) UpsertMatches(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if item.ID <= 0 {
			continue
		}
		r.matches[item.ID] = item
	}
	return nil
}

func (r *MatchRepository) DeleteByScope(_ context.Context, scope competition.Scope) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.matches {
		if item.Scope() == scope {
			delete(r.matches, id)
		}
	}
	return nil
}
