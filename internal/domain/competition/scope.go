package competition

import (
	"fmt"
	"strconv"
	"strings"
)

const minSeasonStartYear = 1900

// Scope bounds every aggregation and ranking: one competition in one season.
type Scope struct {
	CompetitionCode string
	SeasonStartYear int
}

func NewScope(code string, season int) (Scope, error) {
	scope := Scope{
		CompetitionCode: NormalizeCode(code),
		SeasonStartYear: season,
	}
	if err := scope.Validate(); err != nil {
		return Scope{}, err
	}
	return scope, nil
}

// ParseScope builds a scope from raw path/flag values.
func ParseScope(code, season string) (Scope, error) {
	year, err := strconv.Atoi(strings.TrimSpace(season))
	if err != nil {
		return Scope{}, fmt.Errorf("invalid season %q: %w", season, err)
	}
	return NewScope(code, year)
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s Scope) Validate() error {
	if NormalizeCode(s.CompetitionCode) == "" {
		return fmt.Errorf("competition code is required")
	}
	if s.SeasonStartYear < minSeasonStartYear {
		return fmt.Errorf("season start year must be >= %d, got %d", minSeasonStartYear, s.SeasonStartYear)
	}
	return nil
}

// Key is stable and used for locks and cache keys.
func (s Scope) Key() string {
	return NormalizeCode(s.CompetitionCode) + ":" + strconv.Itoa(s.SeasonStartYear)
}

func (s Scope) String() string {
	return s.Key()
}
