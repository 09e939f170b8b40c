package leaguestanding

import (
	"cmp"
	"iter"
	"slices"
	"strings"
)

// DefaultFormLength is the size of the compact form indicator.
const DefaultFormLength = 5

// Form yields the team's matches newest first (ties broken by round, then
// match id, both descending). The sequence works on a private copy and can
// be ranged over any number of times.
func Form(facts []TeamMatchFact, teamID int64) iter.Seq[MatchSummary] {
	items := make([]MatchSummary, 0, 64)
	for _, f := range facts {
		if f.TeamID != teamID {
			continue
		}
		items = append(items, MatchSummary{
			MatchID:      f.MatchID,
			OpponentID:   f.OpponentID,
			Round:        f.Round,
			IsHome:       f.IsHome,
			GoalsFor:     f.GoalsFor,
			GoalsAgainst: f.GoalsAgainst,
			Result:       f.Result,
			Date:         f.MatchDate,
		})
	}
	slices.SortFunc(items, func(a, b MatchSummary) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Round, a.Round); c != 0 {
			return c
		}
		return cmp.Compare(b.MatchID, a.MatchID)
	})

	return func(yield func(MatchSummary) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// Take collects at most n items; n <= 0 collects everything.
func Take(seq iter.Seq[MatchSummary], n int) []MatchSummary {
	out := make([]MatchSummary, 0, max(n, 0))
	for item := range seq {
		if n > 0 && len(out) >= n {
			break
		}
		out = append(out, item)
	}
	return out
}

// FormString renders up to n results as chips, e.g. "WDLWW".
func FormString(seq iter.Seq[MatchSummary], n int) string {
	var b strings.Builder
	for _, item := range Take(seq, n) {
		b.WriteString(item.Result.Short())
	}
	return b.String()
}

// FormsByTeam computes the form string of every team present in facts.
func FormsByTeam(facts []TeamMatchFact, n int) map[int64]string {
	teamIDs := make(map[int64]struct{})
	for _, f := range facts {
		teamIDs[f.TeamID] = struct{}{}
	}
	out := make(map[int64]string, len(teamIDs))
	for teamID := range teamIDs {
		out[teamID] = FormString(Form(facts, teamID), n)
	}
	return out
}
