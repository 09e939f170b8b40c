package leaguestanding

import (
	"context"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

// Repository owns the derived tables. ReplaceScope must swap facts and
// standings for the scope in one atomic step.
type Repository interface {
	ReplaceScope(ctx context.Context, scope competition.Scope, facts []TeamMatchFact, standings []Standing) error
	ListStandings(ctx context.Context, scope competition.Scope) ([]Standing, error)
	ListStandingsByRound(ctx context.Context, scope competition.Scope, round int) ([]Standing, error)
	// ListLatestStandings reads the rows of the highest stored round in
	// one read, so a concurrent replace cannot split round and rows.
	ListLatestStandings(ctx context.Context, scope competition.Scope) ([]Standing, error)
	// ListFacts narrows to one team when teamID > 0.
	ListFacts(ctx context.Context, scope competition.Scope, teamID int64) ([]TeamMatchFact, error)
}
