package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/ingestrun"
)

type IngestRunRepository struct {
	mu   sync.Mutex
	runs []ingestrun.Run
}

func NewIngestRunRepository() *IngestRunRepository {
	return &IngestRunRepository{}
}

func (r *IngestRunRepository) Start(_ context.Context, run ingestrun.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func (r *IngestRunRepository) Finish(_ context.Context, runID, status, details string, finishedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.runs {
		if r.runs[i].ID != runID {
			continue
		}
		r.runs[i].Status = status
		r.runs[i].Details = details
		r.runs[i].FinishedAt = &finishedAt
		return nil
	}
	return fmt.Errorf("ingest run %s not found", runID)
}

// ListRecent returns the newest runs first.
func (r *IngestRunRepository) ListRecent(_ context.Context, limit int) ([]ingestrun.Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(r.runs)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
