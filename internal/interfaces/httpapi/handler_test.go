package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/season-tracker/internal/domain/ingestrun"
	"github.com/riskibarqy/season-tracker/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/usecase"
)

const testJobToken = "job-secret"

type envelope[T any] struct {
	APIVersion string `json:"apiVersion"`
	Data       T      `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	standingRepo := memory.NewLeagueStandingRepository()
	runRepo := memory.NewIngestRunRepository()

	recomputeService := usecase.NewRecomputeService(matchRepo, standingRepo, logger)
	if _, err := recomputeService.Recompute(context.Background(), memory.SeedScope); err != nil {
		t.Fatalf("seed recompute: %v", err)
	}
	standingService := usecase.NewStandingService(standingRepo, teamRepo, 5, logger)
	ingestionService := usecase.NewIngestionService(nil, teamRepo, matchRepo, runRepo, recomputeService, nil, logger)

	handler := NewHandler(standingService, recomputeService, ingestionService, memory.SeedScope, 2, logger)
	return NewRouter(handler, logger, []string{"*"}, testJobToken)
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var out envelope[T]
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body: %v (body=%s)", err, rec.Body.String())
	}
	return out
}

func TestHandler_GetLatestTable(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/competitions/elc/seasons/2025/table", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope[tableDTO](t, rec)
	if body.Data.CompetitionCode != "ELC" || body.Data.Round != 2 {
		t.Fatalf("unexpected table header: %+v", body.Data)
	}
	wantOrder := []int64{356, 71, 341, 328}
	if len(body.Data.Rows) != len(wantOrder) {
		t.Fatalf("expected %d rows, got %d", len(wantOrder), len(body.Data.Rows))
	}
	for i, teamID := range wantOrder {
		row := body.Data.Rows[i]
		if row.TeamID != teamID || row.Position != i+1 {
			t.Fatalf("row %d: got team=%d position=%d want team=%d", i, row.TeamID, row.Position, teamID)
		}
	}

	leeds := body.Data.Rows[2]
	if leeds.TeamName == nil || *leeds.TeamName != "Leeds United FC" || leeds.Form != "LW" || leeds.Points != 3 {
		t.Fatalf("unexpected leeds row: %+v", leeds)
	}
}

func TestHandler_GetStandings_PastRound(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/competitions/ELC/seasons/2025/standings?round=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope[tableDTO](t, rec)
	if body.Data.Round != 1 || body.Data.Rows[0].TeamID != 341 {
		t.Fatalf("unexpected round 1 table: %+v", body.Data)
	}
	if body.Data.Rows[0].Form != "W" {
		t.Fatalf("round 1 form must ignore later matches, got %q", body.Data.Rows[0].Form)
	}
}

func TestHandler_GetStandings_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{name: "unknown round", target: "/v1/competitions/ELC/seasons/2025/standings?round=7", status: http.StatusNotFound},
		{name: "bad round", target: "/v1/competitions/ELC/seasons/2025/standings?round=abc", status: http.StatusBadRequest},
		{name: "bad season", target: "/v1/competitions/ELC/seasons/twenty/table", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodGet, tt.target, "", nil)
			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestHandler_GetLatestTable_EmptyScope(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/competitions/PL/seasons/2025/table", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope[tableDTO](t, rec)
	if body.Data.Round != 0 || len(body.Data.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", body.Data)
	}
}

func TestHandler_GetPositionHistory(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/competitions/ELC/seasons/2025/positions?team_id=341", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope[[]positionPointDTO](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 points, got %d", len(body.Data))
	}
	if body.Data[0].Position != 1 || body.Data[1].Position != 3 {
		t.Fatalf("unexpected trajectory: %+v", body.Data)
	}

	all := decodeEnvelope[[]positionPointDTO](t, doRequest(t, router, http.MethodGet, "/v1/competitions/ELC/seasons/2025/positions", "", nil))
	if len(all.Data) != 8 {
		t.Fatalf("expected 8 points for the whole league, got %d", len(all.Data))
	}
}

func TestHandler_GetTeamForm(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/competitions/ELC/seasons/2025/teams/341/form?limit=1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope[formDTO](t, rec)
	if body.Data.Form != "L" || len(body.Data.Matches) != 1 || body.Data.Matches[0].MatchID != 1004 {
		t.Fatalf("unexpected form: %+v", body.Data)
	}

	bad := doRequest(t, router, http.MethodGet, "/v1/competitions/ELC/seasons/2025/teams/0/form", "", nil)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for team 0, got %d", bad.Code)
	}
}

func TestHandler_GetTeamMatches(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/competitions/ELC/seasons/2025/teams/341/matches", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope[[]teamMatchDTO](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(body.Data))
	}
	newest := body.Data[0]
	if newest.OpponentID != 356 || newest.IsHome || newest.OpponentName == nil || *newest.OpponentName != "Sheffield United FC" {
		t.Fatalf("unexpected newest match: %+v", newest)
	}
}

func TestHandler_InternalRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/recompute", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/internal/ingest-runs", "", map[string]string{internalJobTokenHeader: "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandler_RunRecompute(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{internalJobTokenHeader: testJobToken}

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/recompute", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[usecase.RecomputeBatchResult](t, rec)
	if body.Data.ScopeCount != 1 || body.Data.SuccessCount != 1 || body.Data.Scopes[0].LatestRound != 2 {
		t.Fatalf("unexpected default recompute: %+v", body.Data)
	}

	payload := `{"scopes":[{"competition_code":"elc","season_start_year":2025},{"competition_code":"PL","season_start_year":2024}],"max_workers":4}`
	rec = doRequest(t, router, http.MethodPost, "/v1/internal/recompute", payload, headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body = decodeEnvelope[usecase.RecomputeBatchResult](t, rec)
	if body.Data.ScopeCount != 2 || body.Data.WorkerCount != 2 {
		t.Fatalf("unexpected batch: %+v", body.Data)
	}
}

func TestHandler_RunRecompute_InvalidBody(t *testing.T) {
	router := newTestRouter(t)
	headers := map[string]string{internalJobTokenHeader: testJobToken}

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"scopes":`},
		{name: "missing season", body: `{"scopes":[{"competition_code":"ELC"}]}`},
		{name: "too many workers", body: `{"max_workers":500}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/v1/internal/recompute", tt.body, headers)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandler_RunRefresh_ProviderDisabled(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/v1/internal/refresh", `{"full_refresh":true}`, map[string]string{internalJobTokenHeader: testJobToken})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	body := decodeEnvelope[any](t, rec)
	if body.Error == nil || body.Error.Status != "UNAVAILABLE" {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestHandler_ListIngestRuns(t *testing.T) {
	logger := logging.NewNop()
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	standingRepo := memory.NewLeagueStandingRepository()
	runRepo := memory.NewIngestRunRepository()

	startedAt := time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2"} {
		run := ingestrun.Run{ID: id, Scope: memory.SeedScope, Status: ingestrun.StatusStarted, StartedAt: startedAt.Add(time.Duration(i) * time.Hour)}
		if err := runRepo.Start(context.Background(), run); err != nil {
			t.Fatalf("start run: %v", err)
		}
	}
	if err := runRepo.Finish(context.Background(), "run-1", ingestrun.StatusSuccess, "teams=4, matches=5", startedAt.Add(time.Minute)); err != nil {
		t.Fatalf("finish run: %v", err)
	}

	recomputeService := usecase.NewRecomputeService(matchRepo, standingRepo, logger)
	standingService := usecase.NewStandingService(standingRepo, teamRepo, 5, logger)
	ingestionService := usecase.NewIngestionService(nil, teamRepo, matchRepo, runRepo, recomputeService, nil, logger)
	router := NewRouter(NewHandler(standingService, recomputeService, ingestionService, memory.SeedScope, 2, logger), logger, nil, testJobToken)
	headers := map[string]string{internalJobTokenHeader: testJobToken}

	rec := doRequest(t, router, http.MethodGet, "/v1/internal/ingest-runs?limit=10", "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope[[]ingestRunDTO](t, rec)
	if len(body.Data) != 2 {
		t.Fatalf("expected 2 runs, got %+v", body.Data)
	}
	var finished *ingestRunDTO
	for i := range body.Data {
		if body.Data[i].ID == "run-1" {
			finished = &body.Data[i]
		}
	}
	if finished == nil || finished.Status != ingestrun.StatusSuccess || finished.FinishedAt == nil || finished.CompetitionCode != "ELC" {
		t.Fatalf("unexpected finished run: %+v", body.Data)
	}

	rec = doRequest(t, router, http.MethodGet, "/v1/internal/ingest-runs?limit=abc", "", headers)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandler_ListTeams(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/v1/teams", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope[[]teamDTO](t, rec)
	if len(body.Data) != 4 || body.Data[0].ID != 71 {
		t.Fatalf("unexpected teams: %+v", body.Data)
	}
}

func TestRefreshRequest_ToInput(t *testing.T) {
	defaultScope := memory.SeedScope

	input, err := refreshRequest{}.toInput(defaultScope)
	if err != nil || input.Scope != defaultScope {
		t.Fatalf("expected default scope, got %+v err=%v", input.Scope, err)
	}

	input, err = refreshRequest{SeasonStartYear: 2024, FullRefresh: true}.toInput(defaultScope)
	if err != nil {
		t.Fatalf("to input: %v", err)
	}
	if input.Scope.CompetitionCode != "ELC" || input.Scope.SeasonStartYear != 2024 || !input.FullRefresh {
		t.Fatalf("unexpected input: %+v", input)
	}
}
