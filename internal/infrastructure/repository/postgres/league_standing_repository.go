package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
	qb "github.com/riskibarqy/season-tracker/internal/platform/querybuilder"
)

const (
	teamMatchFactsTable  = "team_match_facts"
	leagueStandingsTable = "league_standings"
)

type LeagueStandingRepository struct {
	db *sqlx.DB
}

func NewLeagueStandingRepository(db *sqlx.DB) *LeagueStandingRepository {
	return &LeagueStandingRepository{db: db}
}

// ReplaceScope deletes both derived tables of the scope and inserts the new
// rows in one transaction. Readers see either the old or the new tables.
func (r *LeagueStandingRepository) ReplaceScope(ctx context.Context, scope competition.Scope, facts []leaguestanding.TeamMatchFact, standings []leaguestanding.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{leagueStandingsTable, teamMatchFactsTable} {
		query, args, err := qb.DeleteFrom(table).Where(scopeConditions(scope)...).ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s scope=%s: %w", table, scope, err)
		}
	}

	factModels := make([]teamMatchFactModel, 0, len(facts))
	for _, f := range facts {
		factModels = append(factModels, teamMatchFactModel{
			CompetitionCode: scope.CompetitionCode,
			SeasonStartYear: scope.SeasonStartYear,
			MatchID:         f.MatchID,
			TeamID:          f.TeamID,
			OpponentID:      f.OpponentID,
			IsHome:          f.IsHome,
			GoalsFor:        f.GoalsFor,
			GoalsAgainst:    f.GoalsAgainst,
			Result:          string(f.Result),
			MatchDate:       f.MatchDate.UTC(),
			Round:           f.Round,
		})
	}
	if err := insertBatches(ctx, tx, teamMatchFactsTable, factModels); err != nil {
		return err
	}

	standingModels := make([]leagueStandingModel, 0, len(standings))
	for _, s := range standings {
		standingModels = append(standingModels, leagueStandingModel{
			CompetitionCode: scope.CompetitionCode,
			SeasonStartYear: scope.SeasonStartYear,
			Round:           s.Round,
			TeamID:          s.TeamID,
			Played:          s.Played,
			Won:             s.Won,
			Drawn:           s.Drawn,
			Lost:            s.Lost,
			GoalsFor:        s.GoalsFor,
			GoalsAgainst:    s.GoalsAgainst,
			GoalDifference:  s.GoalDifference,
			Points:          s.Points,
			Position:        s.Position,
			LastMatchDate:   s.LastMatchDate.UTC(),
		})
	}
	if err := insertBatches(ctx, tx, leagueStandingsTable, standingModels); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings tx: %w", err)
	}
	return nil
}

func (r *LeagueStandingRepository) ListStandings(ctx context.Context, scope competition.Scope) ([]leaguestanding.Standing, error) {
	query, args, err := qb.Select("*").From(leagueStandingsTable).
		Where(scopeConditions(scope)...).
		OrderBy("round", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}
	return r.selectStandings(ctx, scope, query, args)
}

func (r *LeagueStandingRepository) ListStandingsByRound(ctx context.Context, scope competition.Scope, round int) ([]leaguestanding.Standing, error) {
	query, args, err := qb.Select("*").From(leagueStandingsTable).
		Where(append(scopeConditions(scope), qb.Eq("round", round))...).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings by round query: %w", err)
	}
	return r.selectStandings(ctx, scope, query, args)
}

func (r *LeagueStandingRepository) ListLatestStandings(ctx context.Context, scope competition.Scope) ([]leaguestanding.Standing, error) {
	query, args, err := latestStandingsQuery(scope)
	if err != nil {
		return nil, fmt.Errorf("build latest standings query: %w", err)
	}
	return r.selectStandings(ctx, scope, query, args)
}

// latestStandingsQuery resolves MAX(round) in a subquery of the same
// statement, so the round and its rows come from one snapshot.
func latestStandingsQuery(scope competition.Scope) (string, []any, error) {
	maxRound := qb.Expr(
		"round = (SELECT MAX(round) FROM "+leagueStandingsTable+" WHERE competition_code = ? AND season_start_year = ?)",
		scope.CompetitionCode, scope.SeasonStartYear,
	)
	return qb.Select("*").From(leagueStandingsTable).
		Where(append(scopeConditions(scope), maxRound)...).
		OrderBy("position").
		ToSQL()
}

func (r *LeagueStandingRepository) ListFacts(ctx context.Context, scope competition.Scope, teamID int64) ([]leaguestanding.TeamMatchFact, error) {
	conditions := scopeConditions(scope)
	if teamID > 0 {
		conditions = append(conditions, qb.Eq("team_id", teamID))
	}
	query, args, err := qb.Select("*").From(teamMatchFactsTable).
		Where(conditions...).
		OrderBy("team_id", "match_date", "match_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list facts query: %w", err)
	}

	var rows []teamMatchFactModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list facts scope=%s team=%d: %w", scope, teamID, err)
	}

	out := make([]leaguestanding.TeamMatchFact, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaguestanding.TeamMatchFact{
			MatchID:      row.MatchID,
			Scope:        scope,
			TeamID:       row.TeamID,
			OpponentID:   row.OpponentID,
			IsHome:       row.IsHome,
			GoalsFor:     row.GoalsFor,
			GoalsAgainst: row.GoalsAgainst,
			Result:       leaguestanding.Result(row.Result),
			MatchDate:    row.MatchDate.UTC(),
			Round:        row.Round,
		})
	}
	return out, nil
}

func (r *LeagueStandingRepository) selectStandings(ctx context.Context, scope competition.Scope, query string, args []any) ([]leaguestanding.Standing, error) {
	var rows []leagueStandingModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings scope=%s: %w", scope, err)
	}

	out := make([]leaguestanding.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, leaguestanding.Standing{
			Scope:          scope,
			Round:          row.Round,
			TeamID:         row.TeamID,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			Position:       row.Position,
			LastMatchDate:  row.LastMatchDate.UTC(),
		})
	}
	return out, nil
}

func scopeConditions(scope competition.Scope) []qb.Condition {
	return []qb.Condition{
		qb.Eq("competition_code", scope.CompetitionCode),
		qb.Eq("season_start_year", scope.SeasonStartYear),
	}
}

func insertBatches[T any](ctx context.Context, tx *sqlx.Tx, table string, models []T) error {
	for _, batch := range chunkModels(models, insertBatchSize) {
		query, args, err := qb.InsertModels(table, batch, "")
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}
