package leaguestanding

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

// RoundKey identifies one ranking population.
type RoundKey struct {
	Scope competition.Scope
	Round int
}

// RoundGroup is the standings set of one RoundKey.
type RoundGroup struct {
	Key  RoundKey
	Rows []Standing
}

// Compare orders rows by points, goal difference and goals for (all
// descending), then by ascending team id. The last key only guarantees a
// total order; two distinct teams never compare equal.
func Compare(a, b Standing) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference, a.GoalDifference); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	return cmp.Compare(a.TeamID, b.TeamID)
}

// Rank returns a sorted copy of one round's rows with Position set to
// 1..N. No two rows share a position.
func Rank(rows []Standing) []Standing {
	out := slices.Clone(rows)
	slices.SortFunc(out, Compare)
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}

// GroupByRound splits rows by (scope, round), ordered by key.
func GroupByRound(rows []Standing) []RoundGroup {
	index := make(map[RoundKey]int)
	groups := make([]RoundGroup, 0, 64)
	for _, row := range rows {
		key := RoundKey{Scope: row.Scope, Round: row.Round}
		idx, ok := index[key]
		if !ok {
			idx = len(groups)
			index[key] = idx
			groups = append(groups, RoundGroup{Key: key})
		}
		groups[idx].Rows = append(groups[idx].Rows, row)
	}

	slices.SortFunc(groups, func(a, b RoundGroup) int {
		if c := compareScope(a.Key.Scope, b.Key.Scope); c != 0 {
			return c
		}
		return cmp.Compare(a.Key.Round, b.Key.Round)
	})
	return groups
}

// RankRounds ranks every round independently. Output is ordered by
// scope, round, position.
func RankRounds(rows []Standing) []Standing {
	out := make([]Standing, 0, len(rows))
	for _, group := range GroupByRound(rows) {
		out = append(out, Rank(group.Rows)...)
	}
	return out
}
