package match

import (
	"strings"
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusAwarded   = "AWARDED"
	StatusSuspended = "SUSPENDED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// Match is one raw result row as delivered by the ingestion source.
type Match struct {
	ID              int64
	CompetitionCode string
	SeasonStartYear int
	Round           int
	Stage           string
	Date            time.Time
	Status          string

	HomeTeamID   int64
	HomeTeamName string
	AwayTeamID   int64
	AwayTeamName string

	HomeScore     *int
	AwayScore     *int
	HomeScoreHalf *int
	AwayScoreHalf *int

	Winner        string
	LastUpdatedAt *time.Time
}

func (m Match) Scope() competition.Scope {
	return competition.Scope{
		CompetitionCode: competition.NormalizeCode(m.CompetitionCode),
		SeasonStartYear: m.SeasonStartYear,
	}
}

// HasScore reports whether both full-time scores are recorded.
func (m Match) HasScore() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// HasAnyScore reports whether at least one full-time score is recorded.
func (m Match) HasAnyScore() bool {
	return m.HomeScore != nil || m.AwayScore != nil
}

func (m Match) IsCompleted() bool {
	return IsCompletedStatus(m.Status)
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsCompletedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, StatusAwarded, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusInPlay, StatusPaused, "LIVE", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, StatusSuspended, "ABANDONED":
		return true
	default:
		return false
	}
}
