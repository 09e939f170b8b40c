package footballdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/platform/resilience"
	"github.com/stretchr/testify/require"
)

var elc2025 = competition.Scope{CompetitionCode: "ELC", SeasonStartYear: 2025}

const matchesFixture = `{
  "matches": [
    {
      "id": 537785,
      "utcDate": "2025-08-09T11:30:00Z",
      "status": "FINISHED",
      "matchday": 1,
      "stage": "REGULAR_SEASON",
      "lastUpdated": "2025-08-10T00:20:51Z",
      "homeTeam": {"id": 341, "name": "Leeds United FC"},
      "awayTeam": {"id": 328, "name": "Burnley FC"},
      "score": {"winner": "HOME_TEAM", "fullTime": {"home": 2, "away": 0}, "halfTime": {"home": 1, "away": 0}}
    },
    {
      "id": 537790,
      "utcDate": "2025-08-23T14:00:00Z",
      "status": "TIMED",
      "matchday": null,
      "homeTeam": {"id": null, "name": null},
      "awayTeam": {"id": 71, "name": "Sunderland AFC"},
      "score": {"winner": null, "fullTime": {"home": null, "away": null}, "halfTime": {"home": null, "away": null}}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		Token:          "secret",
		MaxRetries:     retries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
	client.backoff = func(int) time.Duration { return time.Millisecond }
	return client
}

func TestClient_FetchMatches(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/competitions/ELC/matches", r.URL.Path)
		require.Equal(t, "2025", r.URL.Query().Get("season"))
		require.Equal(t, "secret", r.Header.Get("X-Auth-Token"))
		_, _ = w.Write([]byte(matchesFixture))
	}, 0, resilience.CircuitBreakerConfig{})

	got, err := client.FetchMatches(context.Background(), elc2025)
	require.NoError(t, err)
	require.Len(t, got, 2)

	finished := got[0]
	require.Equal(t, int64(537785), finished.ID)
	require.Equal(t, 1, finished.Round)
	require.Equal(t, match.StatusFinished, finished.Status)
	require.Equal(t, time.Date(2025, 8, 9, 11, 30, 0, 0, time.UTC), finished.Date)
	require.NotNil(t, finished.HomeScore)
	require.Equal(t, 2, *finished.HomeScore)
	require.Equal(t, 1, *finished.HomeScoreHalf)
	require.Equal(t, "ELC", finished.CompetitionCode)

	upcoming := got[1]
	require.Zero(t, upcoming.Round)
	require.Zero(t, upcoming.HomeTeamID)
	require.Nil(t, upcoming.HomeScore)
	require.False(t, upcoming.HasAnyScore())
}

func TestClient_FetchTeams(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/competitions/ELC/teams", r.URL.Path)
		_, _ = w.Write([]byte(`{"teams":[{"id":341,"name":" Leeds United FC ","shortName":"Leeds United","tla":"LEE","crest":"https://crests.football-data.org/341.png"},{"id":0,"name":"ghost"}]}`))
	}, 0, resilience.CircuitBreakerConfig{})

	got, err := client.FetchTeams(context.Background(), elc2025)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Leeds United FC", got[0].Name)
	require.Equal(t, "LEE", got[0].Abbreviation)
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"teams":[]}`))
	}, 2, resilience.CircuitBreakerConfig{})

	got, err := client.FetchTeams(context.Background(), elc2025)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_ClientErrorDoesNotRetryOrTripBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"The resource you are looking for is restricted."}`))
	}, 3, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})

	for range 2 {
		_, err := client.FetchMatches(context.Background(), elc2025)
		require.Error(t, err)
		require.Contains(t, err.Error(), "status=403")
	}
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, resilience.CircuitStateClosed, client.breaker.State())
}

func TestClient_OpenBreakerShortCircuits(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, 0, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Hour})

	_, err := client.FetchMatches(context.Background(), elc2025)
	require.Error(t, err)

	_, err = client.FetchMatches(context.Background(), elc2025)
	require.True(t, errors.Is(err, resilience.ErrCircuitOpen), "expected open breaker, got %v", err)
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_MissingToken(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})
	_, err := client.FetchTeams(context.Background(), elc2025)
	require.True(t, errors.Is(err, ErrTokenMissing))
}
