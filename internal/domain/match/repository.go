package match

import (
	"context"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

// Repository exposes raw match reads and ingestion writes.
type Repository interface {
	ListByScope(ctx context.Context, scope competition.Scope) ([]Match, error)
	UpsertMatches(ctx context.Context, items []Match) error
	DeleteByScope(ctx context.Context, scope competition.Scope) error
}
