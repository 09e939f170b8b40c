package postgres

import (
	"database/sql"
	"time"
)

type ingestRunTableModel struct {
	ID              string       `db:"id"`
	CompetitionCode string       `db:"competition_code"`
	SeasonStartYear int          `db:"season_start_year"`
	Status          string       `db:"status"`
	Details         string       `db:"details"`
	StartedAt       time.Time    `db:"started_at"`
	FinishedAt      sql.NullTime `db:"finished_at"`
}

type ingestRunInsertModel struct {
	ID              string    `db:"id"`
	CompetitionCode string    `db:"competition_code"`
	SeasonStartYear int       `db:"season_start_year"`
	Status          string    `db:"status"`
	Details         string    `db:"details"`
	StartedAt       time.Time `db:"started_at"`
}
