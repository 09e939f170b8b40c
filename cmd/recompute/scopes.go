package main

import (
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

// scopesFile lists the competition seasons a batch run rebuilds:
//
//	scopes:
//	  - competition: ELC
//	    season: 2025
type scopesFile struct {
	Scopes []scopeEntry `yaml:"scopes"`
}

type scopeEntry struct {
	Competition string `yaml:"competition"`
	Season      int    `yaml:"season"`
}

func loadScopesFile(path string) ([]competition.Scope, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read scopes file %s", path)
	}
	return parseScopes(raw)
}

func parseScopes(raw []byte) ([]competition.Scope, error) {
	var file scopesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, crerr.Wrap(err, "decode scopes yaml")
	}
	if len(file.Scopes) == 0 {
		return nil, crerr.New("scopes file lists no scopes")
	}

	out := make([]competition.Scope, 0, len(file.Scopes))
	for i, entry := range file.Scopes {
		scope, err := competition.NewScope(entry.Competition, entry.Season)
		if err != nil {
			return nil, crerr.Wrapf(err, "scope #%d", i+1)
		}
		out = append(out, scope)
	}
	return out, nil
}

// parseScopeList reads "ELC:2025,PL:2024" style flag values.
func parseScopeList(raw string) ([]competition.Scope, error) {
	out := make([]competition.Scope, 0, 4)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, season, ok := strings.Cut(item, ":")
		if !ok {
			return nil, crerr.Newf("scope %q must look like CODE:SEASON", item)
		}
		scope, err := competition.ParseScope(code, season)
		if err != nil {
			return nil, crerr.Wrapf(err, "scope %q", item)
		}
		out = append(out, scope)
	}
	return out, nil
}
