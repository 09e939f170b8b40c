package leaguestanding

import (
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

// Result is the outcome of a match from one team's perspective.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultDraw Result = "DRAW"
	ResultLoss Result = "LOSS"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// ResultFromScore compares goals for and against.
func ResultFromScore(goalsFor, goalsAgainst int) Result {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Short returns the single-letter chip used by form strings.
func (r Result) Short() string {
	switch r {
	case ResultWin:
		return "W"
	case ResultDraw:
		return "D"
	case ResultLoss:
		return "L"
	default:
		return "?"
	}
}

func (r Result) Points() int {
	switch r {
	case ResultWin:
		return pointsForWin
	case ResultDraw:
		return pointsForDraw
	default:
		return 0
	}
}

// TeamMatchFact is one completed match seen from one side.
type TeamMatchFact struct {
	MatchID      int64
	Scope        competition.Scope
	TeamID       int64
	OpponentID   int64
	IsHome       bool
	GoalsFor     int
	GoalsAgainst int
	Result       Result
	MatchDate    time.Time
	Round        int
}

// Standing is a team's cumulative record up to and including Round.
type Standing struct {
	Scope          competition.Scope
	Round          int
	TeamID         int64
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Position       int
	LastMatchDate  time.Time
}

func (s Standing) PointsPerGame() float64 {
	if s.Played <= 0 {
		return 0
	}
	return float64(s.Points) / float64(s.Played)
}

// TableRow is a ranked standing enriched with display metadata.
// TeamName is nil when the team is missing from metadata.
type TableRow struct {
	Standing
	TeamName      *string
	ShortName     string
	Abbreviation  string
	BadgeURL      string
	PointsPerGame float64
	Form          string
}

// PositionPoint is one step of a team's position trajectory.
type PositionPoint struct {
	Scope          competition.Scope
	TeamID         int64
	Round          int
	Position       int
	Points         int
	GoalDifference int
	AsOf           time.Time
}

// MatchSummary is a single entry of a team's form sequence.
type MatchSummary struct {
	MatchID      int64
	OpponentID   int64
	Round        int
	IsHome       bool
	GoalsFor     int
	GoalsAgainst int
	Result       Result
	Date         time.Time
}
