package httpapi

import (
	"strings"
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/ingestrun"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
	"github.com/riskibarqy/season-tracker/internal/usecase"
)

type teamDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ShortName    string `json:"short_name,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty"`
	BadgeURL     string `json:"badge_url,omitempty"`
}

type tableDTO struct {
	CompetitionCode string        `json:"competition_code"`
	SeasonStartYear int           `json:"season_start_year"`
	Round           int           `json:"round"`
	Rows            []tableRowDTO `json:"rows"`
}

type tableRowDTO struct {
	Position       int        `json:"position"`
	TeamID         int64      `json:"team_id"`
	TeamName       *string    `json:"team_name"`
	ShortName      string     `json:"short_name,omitempty"`
	Abbreviation   string     `json:"abbreviation,omitempty"`
	BadgeURL       string     `json:"badge_url,omitempty"`
	Played         int        `json:"played"`
	Won            int        `json:"won"`
	Drawn          int        `json:"drawn"`
	Lost           int        `json:"lost"`
	GoalsFor       int        `json:"goals_for"`
	GoalsAgainst   int        `json:"goals_against"`
	GoalDifference int        `json:"goal_difference"`
	Points         int        `json:"points"`
	PointsPerGame  float64    `json:"points_per_game"`
	Form           string     `json:"form"`
	LastMatchDate  *time.Time `json:"last_match_date,omitempty"`
}

type positionPointDTO struct {
	TeamID         int64     `json:"team_id"`
	Round          int       `json:"round"`
	Position       int       `json:"position"`
	Points         int       `json:"points"`
	GoalDifference int       `json:"goal_difference"`
	AsOf           time.Time `json:"as_of"`
}

type matchSummaryDTO struct {
	MatchID      int64     `json:"match_id"`
	OpponentID   int64     `json:"opponent_id"`
	Round        int       `json:"round"`
	IsHome       bool      `json:"is_home"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
	Result       string    `json:"result"`
	Date         time.Time `json:"date"`
}

type formDTO struct {
	TeamID  int64             `json:"team_id"`
	Form    string            `json:"form"`
	Matches []matchSummaryDTO `json:"matches"`
}

type teamMatchDTO struct {
	matchSummaryDTO
	OpponentName *string `json:"opponent_name"`
}

type ingestRunDTO struct {
	ID              string     `json:"id"`
	CompetitionCode string     `json:"competition_code"`
	SeasonStartYear int        `json:"season_start_year"`
	Status          string     `json:"status"`
	Details         string     `json:"details,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:           v.ID,
		Name:         v.Name,
		ShortName:    v.ShortName,
		Abbreviation: v.Abbreviation,
		BadgeURL:     v.BadgeURL,
	}
}

func roundTableToDTO(v usecase.RoundTable) tableDTO {
	rows := make([]tableRowDTO, 0, len(v.Rows))
	for _, row := range v.Rows {
		item := tableRowDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			ShortName:      row.ShortName,
			Abbreviation:   row.Abbreviation,
			BadgeURL:       row.BadgeURL,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
			PointsPerGame:  row.PointsPerGame,
			Form:           row.Form,
		}
		if !row.LastMatchDate.IsZero() {
			lastMatch := row.LastMatchDate
			item.LastMatchDate = &lastMatch
		}
		rows = append(rows, item)
	}
	return tableDTO{
		CompetitionCode: v.Scope.CompetitionCode,
		SeasonStartYear: v.Scope.SeasonStartYear,
		Round:           v.Round,
		Rows:            rows,
	}
}

func positionPointToDTO(v leaguestanding.PositionPoint) positionPointDTO {
	return positionPointDTO{
		TeamID:         v.TeamID,
		Round:          v.Round,
		Position:       v.Position,
		Points:         v.Points,
		GoalDifference: v.GoalDifference,
		AsOf:           v.AsOf,
	}
}

func matchSummaryToDTO(v leaguestanding.MatchSummary) matchSummaryDTO {
	return matchSummaryDTO{
		MatchID:      v.MatchID,
		OpponentID:   v.OpponentID,
		Round:        v.Round,
		IsHome:       v.IsHome,
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
		Result:       string(v.Result),
		Date:         v.Date,
	}
}

func formToDTO(teamID int64, items []leaguestanding.MatchSummary) formDTO {
	matches := make([]matchSummaryDTO, 0, len(items))
	var chips strings.Builder
	for _, item := range items {
		chips.WriteString(item.Result.Short())
		matches = append(matches, matchSummaryToDTO(item))
	}
	return formDTO{TeamID: teamID, Form: chips.String(), Matches: matches}
}

func teamMatchToDTO(v usecase.TeamMatch) teamMatchDTO {
	return teamMatchDTO{
		matchSummaryDTO: matchSummaryToDTO(v.MatchSummary),
		OpponentName:    v.OpponentName,
	}
}

func ingestRunToDTO(v ingestrun.Run) ingestRunDTO {
	return ingestRunDTO{
		ID:              v.ID,
		CompetitionCode: v.Scope.CompetitionCode,
		SeasonStartYear: v.Scope.SeasonStartYear,
		Status:          v.Status,
		Details:         v.Details,
		StartedAt:       v.StartedAt,
		FinishedAt:      v.FinishedAt,
	}
}
