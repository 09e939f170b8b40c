package ingestrun

import (
	"context"
	"time"
)

type Repository interface {
	Start(ctx context.Context, run Run) error
	Finish(ctx context.Context, runID, status, details string, finishedAt time.Time) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}
