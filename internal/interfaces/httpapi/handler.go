package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/usecase"
)

type Handler struct {
	standingService  *usecase.StandingService
	recomputeService *usecase.RecomputeService
	ingestionService *usecase.IngestionService
	defaultScope     competition.Scope
	recomputeWorkers int
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	standingService *usecase.StandingService,
	recomputeService *usecase.RecomputeService,
	ingestionService *usecase.IngestionService,
	defaultScope competition.Scope,
	recomputeWorkers int,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		standingService:  standingService,
		recomputeService: recomputeService,
		ingestionService: ingestionService,
		defaultScope:     defaultScope,
		recomputeWorkers: recomputeWorkers,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListTeams")
	defer span.End()

	teams, err := h.standingService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLatestTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLatestTable")
	defer span.End()

	scope, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.standingService.LatestTable(ctx, scope)
	if err != nil {
		h.logger.WarnContext(ctx, "get latest table failed", "scope", scope.Key(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundTableToDTO(table))
}

// GetStandings serves the ranked table of a past round; without round it
// behaves like GetLatestTable.
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetStandings")
	defer span.End()

	scope, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	round, err := parseOptionalPositiveInt(r.URL.Query().Get("round"), "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.standingService.Table(ctx, scope, round)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "scope", scope.Key(), "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, roundTableToDTO(table))
}

func (h *Handler) GetPositionHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetPositionHistory")
	defer span.End()

	scope, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := parseOptionalTeamID(r.URL.Query().Get("team_id"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.standingService.PositionHistory(ctx, scope, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get position history failed", "scope", scope.Key(), "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]positionPointDTO, 0, len(points))
	for _, item := range points {
		items = append(items, positionPointToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTeamForm")
	defer span.End()

	scope, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := parseTeamID(r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := parseOptionalPositiveInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	form, err := h.standingService.Form(ctx, scope, teamID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get team form failed", "scope", scope.Key(), "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formToDTO(teamID, form))
}

func (h *Handler) GetTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTeamMatches")
	defer span.End()

	scope, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	teamID, err := parseTeamID(r.PathValue("teamID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.standingService.Matches(ctx, scope, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team matches failed", "scope", scope.Key(), "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamMatchDTO, 0, len(matches))
	for _, item := range matches {
		items = append(items, teamMatchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RunRecompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunRecompute")
	defer span.End()

	var req recomputeRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	scopes, err := req.toScopes(h.defaultScope)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	workers := req.MaxWorkers
	if workers <= 0 {
		workers = h.recomputeWorkers
	}

	result, err := h.recomputeService.RecomputeMany(ctx, scopes, workers)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute failed", "scope_count", len(scopes), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunRefresh")
	defer span.End()

	var req refreshRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	input, err := req.toInput(h.defaultScope)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestionService.Refresh(ctx, input)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh failed", "scope", input.Scope.Key(), "run_id", result.RunID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListIngestRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListIngestRuns")
	defer span.End()

	limit, err := parseOptionalPositiveInt(r.URL.Query().Get("limit"), "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	runs, err := h.ingestionService.ListRuns(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list ingest runs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ingestRunDTO, 0, len(runs))
	for _, item := range runs {
		items = append(items, ingestRunToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func scopeFromPath(r *http.Request) (competition.Scope, error) {
	scope, err := competition.ParseScope(r.PathValue("code"), r.PathValue("season"))
	if err != nil {
		return competition.Scope{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return scope, nil
}

func parseTeamID(raw string) (int64, error) {
	teamID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || teamID <= 0 {
		return 0, fmt.Errorf("%w: team id must be a positive integer", usecase.ErrInvalidInput)
	}
	return teamID, nil
}

func parseOptionalTeamID(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return parseTeamID(raw)
}

func parseOptionalPositiveInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
