package footballdata

import (
	"strings"
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
)

type teamsEnvelope struct {
	Teams []teamPayload `json:"teams"`
}

type teamPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	TLA       string `json:"tla"`
	Crest     string `json:"crest"`
}

type matchesEnvelope struct {
	Matches []matchPayload `json:"matches"`
}

type matchPayload struct {
	ID          int64            `json:"id"`
	UTCDate     string           `json:"utcDate"`
	Status      string           `json:"status"`
	Matchday    *int             `json:"matchday"`
	Stage       string           `json:"stage"`
	LastUpdated string           `json:"lastUpdated"`
	HomeTeam    matchTeamPayload `json:"homeTeam"`
	AwayTeam    matchTeamPayload `json:"awayTeam"`
	Score       scorePayload     `json:"score"`
}

type matchTeamPayload struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type scorePayload struct {
	Winner   string         `json:"winner"`
	FullTime scorePairValue `json:"fullTime"`
	HalfTime scorePairValue `json:"halfTime"`
}

type scorePairValue struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func mapTeam(item teamPayload) team.Team {
	return team.Team{
		ID:           item.ID,
		Name:         strings.TrimSpace(item.Name),
		ShortName:    strings.TrimSpace(item.ShortName),
		Abbreviation: strings.TrimSpace(item.TLA),
		BadgeURL:     strings.TrimSpace(item.Crest),
	}
}

// mapMatch keeps incomplete provider rows as they are; unusable ones are
// classified later by the fact builder.
func mapMatch(scope competition.Scope, item matchPayload) match.Match {
	out := match.Match{
		ID:              item.ID,
		CompetitionCode: scope.CompetitionCode,
		SeasonStartYear: scope.SeasonStartYear,
		Stage:           strings.TrimSpace(item.Stage),
		Status:          match.NormalizeStatus(item.Status),
		HomeTeamName:    strings.TrimSpace(item.HomeTeam.Name),
		AwayTeamName:    strings.TrimSpace(item.AwayTeam.Name),
		HomeScore:       item.Score.FullTime.Home,
		AwayScore:       item.Score.FullTime.Away,
		HomeScoreHalf:   item.Score.HalfTime.Home,
		AwayScoreHalf:   item.Score.HalfTime.Away,
		Winner:          strings.TrimSpace(item.Score.Winner),
		LastUpdatedAt:   parseProviderTime(item.LastUpdated),
	}
	if item.Matchday != nil {
		out.Round = *item.Matchday
	}
	if item.HomeTeam.ID != nil {
		out.HomeTeamID = *item.HomeTeam.ID
	}
	if item.AwayTeam.ID != nil {
		out.AwayTeamID = *item.AwayTeam.ID
	}
	if kickoff := parseProviderTime(item.UTCDate); kickoff != nil {
		out.Date = *kickoff
	}
	return out
}

func parseProviderTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			t := parsed.UTC()
			return &t
		}
	}
	return nil
}
