package memory

import (
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
)

// SeedScope is the scope served by the in-memory store when no database is
// configured.
var SeedScope = competition.Scope{CompetitionCode: "ELC", SeasonStartYear: 2025}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: 341, Name: "Leeds United FC", ShortName: "Leeds United", Abbreviation: "LEE"},
		{ID: 328, Name: "Burnley FC", ShortName: "Burnley", Abbreviation: "BUR"},
		{ID: 71, Name: "Sunderland AFC", ShortName: "Sunderland", Abbreviation: "SUN"},
		{ID: 356, Name: "Sheffield United FC", ShortName: "Sheffield Utd", Abbreviation: "SHE"},
	}
}

// SeedMatches covers two played rounds plus one upcoming fixture.
func SeedMatches() []match.Match {
	kickoff := func(day, hour int) time.Time {
		return time.Date(2025, time.August, day, hour, 0, 0, 0, time.UTC)
	}
	score := func(v int) *int { return &v }

	return []match.Match{
		seedMatch(1001, 1, kickoff(9, 11), match.StatusFinished, 341, 328, score(2), score(0)),
		seedMatch(1002, 1, kickoff(9, 14), match.StatusFinished, 71, 356, score(1), score(1)),
		seedMatch(1003, 2, kickoff(16, 11), match.StatusFinished, 328, 71, score(0), score(1)),
		seedMatch(1004, 2, kickoff(16, 14), match.StatusFinished, 356, 341, score(3), score(2)),
		seedMatch(1005, 3, kickoff(23, 14), match.StatusTimed, 341, 71, nil, nil),
	}
}

func seedMatch(id int64, round int, date time.Time, status string, home, away int64, homeScore, awayScore *int) match.Match {
	return match.Match{
		ID:              id,
		CompetitionCode: SeedScope.CompetitionCode,
		SeasonStartYear: SeedScope.SeasonStartYear,
		Round:           round,
		Stage:           "REGULAR_SEASON",
		Date:            date,
		Status:          status,
		HomeTeamID:      home,
		AwayTeamID:      away,
		HomeScore:       homeScore,
		AwayScore:       awayScore,
	}
}
