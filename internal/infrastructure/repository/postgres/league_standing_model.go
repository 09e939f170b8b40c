package postgres

import "time"

type teamMatchFactModel struct {
	CompetitionCode string    `db:"competition_code"`
	SeasonStartYear int       `db:"season_start_year"`
	MatchID         int64     `db:"match_id"`
	TeamID          int64     `db:"team_id"`
	OpponentID      int64     `db:"opponent_id"`
	IsHome          bool      `db:"is_home"`
	GoalsFor        int       `db:"goals_for"`
	GoalsAgainst    int       `db:"goals_against"`
	Result          string    `db:"result"`
	MatchDate       time.Time `db:"match_date"`
	Round           int       `db:"round"`
}

type leagueStandingModel struct {
	CompetitionCode string    `db:"competition_code"`
	SeasonStartYear int       `db:"season_start_year"`
	Round           int       `db:"round"`
	TeamID          int64     `db:"team_id"`
	Played          int       `db:"played"`
	Won             int       `db:"won"`
	Drawn           int       `db:"drawn"`
	Lost            int       `db:"lost"`
	GoalsFor        int       `db:"goals_for"`
	GoalsAgainst    int       `db:"goals_against"`
	GoalDifference  int       `db:"goal_difference"`
	Points          int       `db:"points"`
	Position        int       `db:"position"`
	LastMatchDate   time.Time `db:"last_match_date"`
}
