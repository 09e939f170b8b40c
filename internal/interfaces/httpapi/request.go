package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type scopeRequest struct {
	CompetitionCode string `json:"competition_code" validate:"required,min=2,max=10"`
	SeasonStartYear int    `json:"season_start_year" validate:"required,gte=1900"`
}

type recomputeRequest struct {
	Scopes     []scopeRequest `json:"scopes" validate:"omitempty,max=100,dive"`
	MaxWorkers int            `json:"max_workers" validate:"omitempty,gte=1,lte=32"`
}

type refreshRequest struct {
	CompetitionCode string `json:"competition_code" validate:"omitempty,min=2,max=10"`
	SeasonStartYear int    `json:"season_start_year" validate:"omitempty,gte=1900"`
	FullRefresh     bool   `json:"full_refresh"`
	SkipRecompute   bool   `json:"skip_recompute"`
}

// decodeOptionalJSON leaves dst untouched when the body is empty.
func decodeOptionalJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes)).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: invalid json body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (req recomputeRequest) toScopes(defaultScope competition.Scope) ([]competition.Scope, error) {
	if len(req.Scopes) == 0 {
		return []competition.Scope{defaultScope}, nil
	}
	out := make([]competition.Scope, 0, len(req.Scopes))
	for _, item := range req.Scopes {
		scope, err := competition.NewScope(item.CompetitionCode, item.SeasonStartYear)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		out = append(out, scope)
	}
	return out, nil
}

func (req refreshRequest) toInput(defaultScope competition.Scope) (usecase.RefreshInput, error) {
	scope := defaultScope
	if req.CompetitionCode != "" || req.SeasonStartYear != 0 {
		code := req.CompetitionCode
		if code == "" {
			code = defaultScope.CompetitionCode
		}
		season := req.SeasonStartYear
		if season == 0 {
			season = defaultScope.SeasonStartYear
		}
		parsed, err := competition.NewScope(code, season)
		if err != nil {
			return usecase.RefreshInput{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		scope = parsed
	}
	return usecase.RefreshInput{
		Scope:         scope,
		FullRefresh:   req.FullRefresh,
		SkipRecompute: req.SkipRecompute,
	}, nil
}
