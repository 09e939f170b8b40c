package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/ingestrun"
	qb "github.com/riskibarqy/season-tracker/internal/platform/querybuilder"
)

type IngestRunRepository struct {
	db *sqlx.DB
}

func NewIngestRunRepository(db *sqlx.DB) *IngestRunRepository {
	return &IngestRunRepository{db: db}
}

func (r *IngestRunRepository) Start(ctx context.Context, run ingestrun.Run) error {
	query, args, err := qb.InsertModel("ingest_runs", ingestRunInsertModel{
		ID:              run.ID,
		CompetitionCode: run.Scope.CompetitionCode,
		SeasonStartYear: run.Scope.SeasonStartYear,
		Status:          run.Status,
		Details:         ingestrun.TruncateDetails(run.Details),
		StartedAt:       run.StartedAt.UTC(),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert ingest run query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert ingest run id=%s: %w", run.ID, err)
	}
	return nil
}

func (r *IngestRunRepository) Finish(ctx context.Context, runID, status, details string, finishedAt time.Time) error {
	query, args, err := qb.Update("ingest_runs").
		Set("status", status).
		Set("details", ingestrun.TruncateDetails(details)).
		Set("finished_at", finishedAt.UTC()).
		Where(qb.Eq("id", runID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finish ingest run query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finish ingest run id=%s: %w", runID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("ingest run %s not found", runID)
	}
	return nil
}

func (r *IngestRunRepository) ListRecent(ctx context.Context, limit int) ([]ingestrun.Run, error) {
	query, args, err := qb.Select("*").From("ingest_runs").
		OrderBy("started_at DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ingest runs query: %w", err)
	}

	var rows []ingestRunTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ingest runs: %w", err)
	}

	out := make([]ingestrun.Run, 0, len(rows))
	for _, row := range rows {
		out = append(out, ingestrun.Run{
			ID: row.ID,
			Scope: competition.Scope{
				CompetitionCode: row.CompetitionCode,
				SeasonStartYear: row.SeasonStartYear,
			},
			Status:     row.Status,
			Details:    row.Details,
			StartedAt:  row.StartedAt.UTC(),
			FinishedAt: nullTimeToTimePtr(row.FinishedAt),
		})
	}
	return out, nil
}
