package httpapi

import "net/http"

const scopePrefix = "/v1/competitions/{code}/seasons/{season}"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET "+scopePrefix+"/table", handler.GetLatestTable)
	mux.HandleFunc("GET "+scopePrefix+"/standings", handler.GetStandings)
	mux.HandleFunc("GET "+scopePrefix+"/positions", handler.GetPositionHistory)
	mux.HandleFunc("GET "+scopePrefix+"/teams/{teamID}/form", handler.GetTeamForm)
	mux.HandleFunc("GET "+scopePrefix+"/teams/{teamID}/matches", handler.GetTeamMatches)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/recompute", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecompute)))
	mux.Handle("POST /v1/internal/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefresh)))
	mux.Handle("GET /v1/internal/ingest-runs", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ListIngestRuns)))
}
