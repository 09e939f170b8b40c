package leaguestanding

import (
	"github.com/riskibarqy/season-tracker/internal/domain/team"
)

// LatestRound is the highest round present in rows.
func LatestRound(rows []Standing) (int, bool) {
	latest, ok := 0, false
	for _, row := range rows {
		if !ok || row.Round > latest {
			latest = row.Round
			ok = true
		}
	}
	return latest, ok
}

// LatestSnapshot returns the ranked rows of the highest round.
func LatestSnapshot(rows []Standing) []Standing {
	latest, ok := LatestRound(rows)
	if !ok {
		return nil
	}

	snapshot := make([]Standing, 0, 32)
	for _, row := range rows {
		if row.Round == latest {
			snapshot = append(snapshot, row)
		}
	}
	return Rank(snapshot)
}

// LatestTable decorates a ranked snapshot with team metadata and form.
// Teams absent from teams keep their row with a nil name; their ids are
// returned in missing.
func LatestTable(ranked []Standing, teams map[int64]team.Team, forms map[int64]string) ([]TableRow, []int64) {
	out := make([]TableRow, 0, len(ranked))
	var missing []int64
	for _, row := range ranked {
		item := TableRow{
			Standing:      row,
			PointsPerGame: row.PointsPerGame(),
			Form:          forms[row.TeamID],
		}
		if meta, ok := teams[row.TeamID]; ok {
			name := meta.DisplayName()
			item.TeamName = &name
			item.ShortName = meta.ShortName
			item.Abbreviation = meta.Abbreviation
			item.BadgeURL = meta.BadgeURL
		} else {
			missing = append(missing, row.TeamID)
		}
		out = append(out, item)
	}
	return out, missing
}
