package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
	qb "github.com/riskibarqy/season-tracker/internal/platform/querybuilder"
)

const teamUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    short_name = EXCLUDED.short_name,
    abbreviation = EXCLUDED.abbreviation,
    badge_url = EXCLUDED.badge_url,
    updated_at = NOW()`

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) ListByIDs(ctx context.Context, ids []int64) ([]team.Team, error) {
	if len(ids) == 0 {
		return []team.Team{}, nil
	}

	query, args, err := qb.Select("*").From("teams").
		Where(qb.AnyInt64("id", ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams by ids query: %w", err)
	}
	return r.selectTeams(ctx, query, args)
}

func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	items = lastByID(items, func(t team.Team) int64 { return t.ID })
	models := make([]teamInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, teamInsertModel{
			ID:           item.ID,
			Name:         item.Name,
			ShortName:    item.ShortName,
			Abbreviation: item.Abbreviation,
			BadgeURL:     item.BadgeURL,
		})
	}

	for _, batch := range chunkModels(models, insertBatchSize) {
		query, args, err := qb.InsertModels("teams", batch, teamUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert teams query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert teams: %w", err)
		}
	}
	return nil
}

func (r *TeamRepository) selectTeams(ctx context.Context, query string, args []any) ([]team.Team, error) {
	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:           row.ID,
			Name:         row.Name,
			ShortName:    row.ShortName,
			Abbreviation: row.Abbreviation,
			BadgeURL:     row.BadgeURL,
		})
	}
	return out, nil
}
