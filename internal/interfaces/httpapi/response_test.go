package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/season-tracker/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_MapsSentinels(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantStatus  string
		wantMessage string
	}{
		{
			name:        "invalid input",
			err:         fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput),
			wantCode:    http.StatusBadRequest,
			wantStatus:  "INVALID_ARGUMENT",
			wantMessage: "invalid input: bad payload",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("%w: no standings for scope=ELC:2025 round=9", usecase.ErrNotFound),
			wantCode:    http.StatusNotFound,
			wantStatus:  "NOT_FOUND",
			wantMessage: "resource not found: no standings for scope=ELC:2025 round=9",
		},
		{
			name:        "unauthorized",
			err:         usecase.ErrUnauthorized,
			wantCode:    http.StatusUnauthorized,
			wantStatus:  "UNAUTHENTICATED",
			wantMessage: "unauthorized",
		},
		{
			name:        "dependency unavailable",
			err:         fmt.Errorf("recompute: %w", usecase.ErrDependencyUnavailable),
			wantCode:    http.StatusServiceUnavailable,
			wantStatus:  "UNAVAILABLE",
			wantMessage: "recompute: dependency unavailable",
		},
		{
			name:        "unmapped error hides details",
			err:         errors.New("pq: relation league_standings does not exist"),
			wantCode:    http.StatusInternalServerError,
			wantStatus:  "INTERNAL",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}

			var body googleResponseEnvelope
			if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal response body: %v", err)
			}
			if body.APIVersion != "2.0" || body.Error == nil {
				t.Fatalf("unexpected envelope: %s", rec.Body.String())
			}
			if body.Error.Status != tt.wantStatus || body.Error.Message != tt.wantMessage {
				t.Fatalf("unexpected error body: %+v", body.Error)
			}
			if len(body.Error.Errors) != 1 || body.Error.Errors[0].Domain != errorDomain {
				t.Fatalf("unexpected error items: %+v", body.Error.Errors)
			}
		})
	}
}
