package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID              int64         `db:"id"`
	CompetitionCode string        `db:"competition_code"`
	SeasonStartYear int           `db:"season_start_year"`
	Round           int           `db:"round"`
	Stage           string        `db:"stage"`
	MatchDate       time.Time     `db:"match_date"`
	Status          string        `db:"status"`
	HomeTeamID      int64         `db:"home_team_id"`
	HomeTeamName    string        `db:"home_team_name"`
	AwayTeamID      int64         `db:"away_team_id"`
	AwayTeamName    string        `db:"away_team_name"`
	HomeScore       sql.NullInt64 `db:"home_score"`
	AwayScore       sql.NullInt64 `db:"away_score"`
	HomeScoreHalf   sql.NullInt64 `db:"home_score_half"`
	AwayScoreHalf   sql.NullInt64 `db:"away_score_half"`
	Winner          string        `db:"winner"`
	LastUpdatedAt   sql.NullTime  `db:"last_updated_at"`
	IngestedAt      time.Time     `db:"ingested_at"`
}

type matchInsertModel struct {
	ID              int64         `db:"id"`
	CompetitionCode string        `db:"competition_code"`
	SeasonStartYear int           `db:"season_start_year"`
	Round           int           `db:"round"`
	Stage           string        `db:"stage"`
	MatchDate       time.Time     `db:"match_date"`
	Status          string        `db:"status"`
	HomeTeamID      int64         `db:"home_team_id"`
	HomeTeamName    string        `db:"home_team_name"`
	AwayTeamID      int64         `db:"away_team_id"`
	AwayTeamName    string        `db:"away_team_name"`
	HomeScore       sql.NullInt64 `db:"home_score"`
	AwayScore       sql.NullInt64 `db:"away_score"`
	HomeScoreHalf   sql.NullInt64 `db:"home_score_half"`
	AwayScoreHalf   sql.NullInt64 `db:"away_score_half"`
	Winner          string        `db:"winner"`
	LastUpdatedAt   sql.NullTime  `db:"last_updated_at"`
}
