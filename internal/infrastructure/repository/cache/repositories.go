package cache

import (
	"context"
	"slices"

	"github.com/riskibarqy/season-tracker/internal/domain/team"
	basecache "github.com/riskibarqy/season-tracker/internal/platform/cache"
)

const (
	teamKeyPrefix = "team:"
	teamListKey   = teamKeyPrefix + "list"
)

// TeamRepository caches the full team list and serves id lookups from it.
// Standings are never cached here; only display metadata is.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store[[]team.Team]
}

func NewTeamRepository(next team.Repository, cache *basecache.Store[[]team.Team]) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	if len(ids) == 0 {
		return []team.Team{}, nil
	}

	items, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	out := make([]team.Team, 0, len(ids))
	for _, item := range items {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	if err := r.next.UpsertTeams(ctx, items); err != nil {
		return err
	}
	r.cache.InvalidatePrefix(teamKeyPrefix)
	return nil
}

func (r *TeamRepository) list(ctx context.Context) ([]team.Team, error) {
	return r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return slices.Clone(items), nil
	})
}
