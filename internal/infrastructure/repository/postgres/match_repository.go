package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	qb "github.com/riskibarqy/season-tracker/internal/platform/querybuilder"
)

const matchUpsertSuffix = `ON CONFLICT (id)
DO UPDATE SET
    competition_code = EXCLUDED.competition_code,
    season_start_year = EXCLUDED.season_start_year,
    round = EXCLUDED.round,
    stage = EXCLUDED.stage,
    match_date = EXCLUDED.match_date,
    status = EXCLUDED.status,
    home_team_id = EXCLUDED.home_team_id,
    home_team_name = EXCLUDED.home_team_name,
    away_team_id = EXCLUDED.away_team_id,
    away_team_name = EXCLUDED.away_team_name,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    home_score_half = EXCLUDED.home_score_half,
    away_score_half = EXCLUDED.away_score_half,
    winner = EXCLUDED.winner,
    last_updated_at = EXCLUDED.last_updated_at,
    ingested_at = NOW()`

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByScope(ctx context.Context, scope competition.Scope) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("competition_code", scope.CompetitionCode),
			qb.Eq("season_start_year", scope.SeasonStartYear),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches by scope query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches scope=%s: %w", scope, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Match{
			ID:              row.ID,
			CompetitionCode: row.CompetitionCode,
			SeasonStartYear: row.SeasonStartYear,
			Round:           row.Round,
			Stage:           row.Stage,
			Date:            row.MatchDate.UTC(),
			Status:          row.Status,
			HomeTeamID:      row.HomeTeamID,
			HomeTeamName:    row.HomeTeamName,
			AwayTeamID:      row.AwayTeamID,
			AwayTeamName:    row.AwayTeamName,
			HomeScore:       nullInt64ToIntPtr(row.HomeScore),
			AwayScore:       nullInt64ToIntPtr(row.AwayScore),
			HomeScoreHalf:   nullInt64ToIntPtr(row.HomeScoreHalf),
			AwayScoreHalf:   nullInt64ToIntPtr(row.AwayScoreHalf),
			Winner:          row.Winner,
			LastUpdatedAt:   nullTimeToTimePtr(row.LastUpdatedAt),
		})
	}
	return out, nil
}

// UpsertMatches writes rows keyed by match id; a later ingest overwrites
// every column of an earlier one.
func (r *MatchRepository) UpsertMatches(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	items = lastByID(items, func(m match.Match) int64 { return m.ID })
	models := make([]matchInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, matchInsertModel{
			ID:              item.ID,
			CompetitionCode: item.CompetitionCode,
			SeasonStartYear: item.SeasonStartYear,
			Round:           item.Round,
			Stage:           item.Stage,
			MatchDate:       item.Date.UTC(),
			Status:          item.Status,
			HomeTeamID:      item.HomeTeamID,
			HomeTeamName:    item.HomeTeamName,
			AwayTeamID:      item.AwayTeamID,
			AwayTeamName:    item.AwayTeamName,
			HomeScore:       intPtrToNullInt64(item.HomeScore),
			AwayScore:       intPtrToNullInt64(item.AwayScore),
			HomeScoreHalf:   intPtrToNullInt64(item.HomeScoreHalf),
			AwayScoreHalf:   intPtrToNullInt64(item.AwayScoreHalf),
			Winner:          item.Winner,
			LastUpdatedAt:   timePtrToNullTime(item.LastUpdatedAt),
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, batch := range chunkModels(models, insertBatchSize) {
		query, args, err := qb.InsertModels("matches", batch, matchUpsertSuffix)
		if err != nil {
			return fmt.Errorf("build upsert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matches tx: %w", err)
	}
	return nil
}

func (r *MatchRepository) DeleteByScope(ctx context.Context, scope competition.Scope) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(
			qb.Eq("competition_code", scope.CompetitionCode),
			qb.Eq("season_start_year", scope.SeasonStartYear),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete matches by scope query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete matches scope=%s: %w", scope, err)
	}
	return nil
}
