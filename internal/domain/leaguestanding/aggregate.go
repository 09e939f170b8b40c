package leaguestanding

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

// Aggregate builds the cumulative, unranked standings of every round.
// For each round r seen anywhere in a scope, a team gets a row summing its
// facts with round <= r; teams yet to play are left out of that round.
// Rows come back ordered by scope, round, team.
func Aggregate(facts []TeamMatchFact) []Standing {
	if len(facts) == 0 {
		return nil
	}

	byScope := make(map[competition.Scope][]TeamMatchFact)
	for _, f := range facts {
		byScope[f.Scope] = append(byScope[f.Scope], f)
	}

	scopes := make([]competition.Scope, 0, len(byScope))
	for scope := range byScope {
		scopes = append(scopes, scope)
	}
	slices.SortFunc(scopes, compareScope)

	out := make([]Standing, 0, len(facts))
	for _, scope := range scopes {
		out = append(out, aggregateScope(scope, byScope[scope])...)
	}
	return out
}

func aggregateScope(scope competition.Scope, facts []TeamMatchFact) []Standing {
	rounds := observedRounds(facts)
	byTeam := groupFactsByTeam(facts)

	teamIDs := make([]int64, 0, len(byTeam))
	for teamID := range byTeam {
		teamIDs = append(teamIDs, teamID)
	}
	slices.Sort(teamIDs)

	rowsByRound := make(map[int][]Standing, len(rounds))
	for _, teamID := range teamIDs {
		teamFacts := byTeam[teamID]
		running := Standing{Scope: scope, TeamID: teamID}
		next := 0
		for _, round := range rounds {
			for next < len(teamFacts) && teamFacts[next].Round <= round {
				accumulate(&running, teamFacts[next])
				next++
			}
			if running.Played == 0 {
				continue
			}
			row := running
			row.Round = round
			rowsByRound[round] = append(rowsByRound[round], row)
		}
	}

	out := make([]Standing, 0, len(teamIDs)*len(rounds))
	for _, round := range rounds {
		out = append(out, rowsByRound[round]...)
	}
	return out
}

func accumulate(row *Standing, f TeamMatchFact) {
	row.Played++
	switch f.Result {
	case ResultWin:
		row.Won++
	case ResultDraw:
		row.Drawn++
	default:
		row.Lost++
	}
	row.GoalsFor += f.GoalsFor
	row.GoalsAgainst += f.GoalsAgainst
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	row.Points = pointsForWin*row.Won + pointsForDraw*row.Drawn
	if f.MatchDate.After(row.LastMatchDate) {
		row.LastMatchDate = f.MatchDate
	}
}

// observedRounds is the sorted union of rounds across all teams.
func observedRounds(facts []TeamMatchFact) []int {
	seen := make(map[int]struct{})
	rounds := make([]int, 0, 64)
	for _, f := range facts {
		if _, ok := seen[f.Round]; ok {
			continue
		}
		seen[f.Round] = struct{}{}
		rounds = append(rounds, f.Round)
	}
	slices.Sort(rounds)
	return rounds
}

// groupFactsByTeam keys facts by team id, each group sorted by round,
// then date, then match id.
func groupFactsByTeam(facts []TeamMatchFact) map[int64][]TeamMatchFact {
	out := make(map[int64][]TeamMatchFact)
	for _, f := range facts {
		out[f.TeamID] = append(out[f.TeamID], f)
	}
	for teamID := range out {
		slices.SortFunc(out[teamID], func(a, b TeamMatchFact) int {
			if c := cmp.Compare(a.Round, b.Round); c != 0 {
				return c
			}
			if c := a.MatchDate.Compare(b.MatchDate); c != 0 {
				return c
			}
			return cmp.Compare(a.MatchID, b.MatchID)
		})
	}
	return out
}

func compareScope(a, b competition.Scope) int {
	if c := cmp.Compare(a.CompetitionCode, b.CompetitionCode); c != 0 {
		return c
	}
	return cmp.Compare(a.SeasonStartYear, b.SeasonStartYear)
}
