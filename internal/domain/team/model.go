package team

import (
	"fmt"
	"strings"
)

// Team is display metadata for a club. Standings never depend on it.
type Team struct {
	ID           int64
	Name         string
	ShortName    string
	Abbreviation string
	BadgeURL     string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// DisplayName prefers the short name when the full name is missing.
func (t Team) DisplayName() string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return strings.TrimSpace(t.ShortName)
}
