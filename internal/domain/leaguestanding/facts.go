package leaguestanding

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
)

// SkipReason explains why a raw match produced no facts.
type SkipReason string

const (
	SkipScoreWithoutCompletion SkipReason = "score_without_completion"
	SkipCompletionWithoutScore SkipReason = "completion_without_score"
	SkipNegativeScore          SkipReason = "negative_score"
	SkipMissingTeam            SkipReason = "missing_team"
	SkipSameTeam               SkipReason = "same_team"
	SkipInvalidRound           SkipReason = "invalid_round"
	SkipScopeMismatch          SkipReason = "scope_mismatch"
	SkipDuplicateMatch         SkipReason = "duplicate_match"
)

// SkippedMatch is a malformed raw match dropped from the build.
type SkippedMatch struct {
	MatchID int64
	Reason  SkipReason
}

// BuildResult holds the facts of every retained match. Excluded counts
// matches that are simply not finished yet; Skipped lists malformed ones.
// InProgress names the excluded matches that already carry a live score.
type BuildResult struct {
	Facts      []TeamMatchFact
	Skipped    []SkippedMatch
	InProgress []int64
	Retained   int
	Excluded   int
}

// BuildFacts turns the raw matches of one scope into two facts per
// completed match. The scope code is compared upper-cased, matching how
// raw matches report their scope. Input is never mutated.
func BuildFacts(scope competition.Scope, matches []match.Match) BuildResult {
	scope.CompetitionCode = competition.NormalizeCode(scope.CompetitionCode)

	ordered := slices.Clone(matches)
	slices.SortStableFunc(ordered, func(a, b match.Match) int {
		return cmp.Compare(a.ID, b.ID)
	})

	out := BuildResult{
		Facts: make([]TeamMatchFact, 0, len(ordered)*2),
	}
	seen := make(map[int64]struct{}, len(ordered))
	for _, m := range ordered {
		if _, dup := seen[m.ID]; dup {
			out.Skipped = append(out.Skipped, SkippedMatch{MatchID: m.ID, Reason: SkipDuplicateMatch})
			continue
		}
		seen[m.ID] = struct{}{}

		retain, reason := classifyMatch(scope, m)
		if reason != "" {
			out.Skipped = append(out.Skipped, SkippedMatch{MatchID: m.ID, Reason: reason})
			continue
		}
		if !retain {
			out.Excluded++
			if m.HasAnyScore() {
				out.InProgress = append(out.InProgress, m.ID)
			}
			continue
		}

		home, away := factsForMatch(scope, m)
		out.Facts = append(out.Facts, home, away)
		out.Retained++
	}

	return out
}

// classifyMatch reports whether m yields facts, or why it is malformed.
// Matches still to be played, and live matches carrying a running score,
// are excluded without being malformed.
func classifyMatch(scope competition.Scope, m match.Match) (bool, SkipReason) {
	if m.Scope() != scope {
		return false, SkipScopeMismatch
	}

	completed := m.IsCompleted()
	switch {
	case completed && !m.HasScore():
		return false, SkipCompletionWithoutScore
	case !completed && m.HasAnyScore():
		if match.IsLiveStatus(m.Status) {
			return false, ""
		}
		return false, SkipScoreWithoutCompletion
	case !completed:
		return false, ""
	}

	if *m.HomeScore < 0 || *m.AwayScore < 0 {
		return false, SkipNegativeScore
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return false, SkipMissingTeam
	}
	if m.HomeTeamID == m.AwayTeamID {
		return false, SkipSameTeam
	}
	if m.Round <= 0 {
		return false, SkipInvalidRound
	}

	return true, ""
}

func factsForMatch(scope competition.Scope, m match.Match) (TeamMatchFact, TeamMatchFact) {
	homeGoals := *m.HomeScore
	awayGoals := *m.AwayScore

	home := TeamMatchFact{
		MatchID:      m.ID,
		Scope:        scope,
		TeamID:       m.HomeTeamID,
		OpponentID:   m.AwayTeamID,
		IsHome:       true,
		GoalsFor:     homeGoals,
		GoalsAgainst: awayGoals,
		Result:       ResultFromScore(homeGoals, awayGoals),
		MatchDate:    m.Date,
		Round:        m.Round,
	}
	away := TeamMatchFact{
		MatchID:      m.ID,
		Scope:        scope,
		TeamID:       m.AwayTeamID,
		OpponentID:   m.HomeTeamID,
		IsHome:       false,
		GoalsFor:     awayGoals,
		GoalsAgainst: homeGoals,
		Result:       ResultFromScore(awayGoals, homeGoals),
		MatchDate:    m.Date,
		Round:        m.Round,
	}
	return home, away
}
