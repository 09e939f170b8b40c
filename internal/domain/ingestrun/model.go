package ingestrun

import (
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

const (
	StatusStarted = "STARTED"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// MaxDetailsLength caps stored failure text.
const MaxDetailsLength = 5000

// Run is the audit record of one ingestion attempt.
type Run struct {
	ID         string
	Scope      competition.Scope
	Status     string
	Details    string
	StartedAt  time.Time
	FinishedAt *time.Time
}

func TruncateDetails(details string) string {
	if len(details) <= MaxDetailsLength {
		return details
	}
	return details[:MaxDetailsLength]
}
