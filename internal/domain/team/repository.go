package team

import "context"

// Repository describes team metadata persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Team, error)
	UpsertTeams(ctx context.Context, items []Team) error
}
