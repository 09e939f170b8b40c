package leaguestanding

import (
	"cmp"
	"slices"
)

// PositionHistory ranks every round and projects each team's trajectory,
// ordered by team then round. Ranking always uses the whole league; narrow
// the result with FilterTeam afterwards.
func PositionHistory(rows []Standing) []PositionPoint {
	ranked := RankRounds(rows)
	out := make([]PositionPoint, 0, len(ranked))
	for _, row := range ranked {
		out = append(out, PositionPoint{
			Scope:          row.Scope,
			TeamID:         row.TeamID,
			Round:          row.Round,
			Position:       row.Position,
			Points:         row.Points,
			GoalDifference: row.GoalDifference,
			AsOf:           row.LastMatchDate,
		})
	}

	slices.SortFunc(out, func(a, b PositionPoint) int {
		if c := compareScope(a.Scope, b.Scope); c != 0 {
			return c
		}
		if c := cmp.Compare(a.TeamID, b.TeamID); c != 0 {
			return c
		}
		return cmp.Compare(a.Round, b.Round)
	})
	return out
}

// FilterTeam keeps the points of one team; teamID <= 0 keeps all.
func FilterTeam(points []PositionPoint, teamID int64) []PositionPoint {
	if teamID <= 0 {
		return points
	}
	out := make([]PositionPoint, 0, 64)
	for _, p := range points {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out
}
