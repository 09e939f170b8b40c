package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/match"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
	"github.com/riskibarqy/season-tracker/internal/platform/resilience"
)

const (
	DefaultBaseURL = "https://api.football-data.org/v4"

	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 8 << 20
)

var (
	ErrTokenMissing = crerr.New("football-data token is not configured")

	errTransient = crerr.New("football-data transient failure")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads teams and matches of one competition season from
// football-data.org.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker.Normalized())
		breaker.OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("football-data circuit breaker state changed", "from", string(from), "to", string(to))
		})
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    breaker,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) FetchTeams(ctx context.Context, scope competition.Scope) ([]team.Team, error) {
	var envelope teamsEnvelope
	if err := c.getJSON(ctx, scopePath(scope, "teams"), seasonQuery(scope), &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch teams scope=%s", scope)
	}

	out := make([]team.Team, 0, len(envelope.Teams))
	for _, item := range envelope.Teams {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapTeam(item))
	}
	return out, nil
}

func (c *Client) FetchMatches(ctx context.Context, scope competition.Scope) ([]match.Match, error) {
	var envelope matchesEnvelope
	if err := c.getJSON(ctx, scopePath(scope, "matches"), seasonQuery(scope), &envelope); err != nil {
		return nil, crerr.Wrapf(err, "fetch matches scope=%s", scope)
	}

	out := make([]match.Match, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		if item.ID <= 0 {
			continue
		}
		out = append(out, mapMatch(scope, item))
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.token == "" {
		return ErrTokenMissing
	}

	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var (
			raw       []byte
			permanent error
		)
		err := c.breaker.Execute(ctx, func(ctx context.Context) error {
			body, reqErr := c.executeRequest(ctx, fullURL)
			if reqErr != nil && !crerr.Is(reqErr, errTransient) {
				// client-side errors say nothing about upstream health
				permanent = reqErr
				return nil
			}
			raw = body
			return reqErr
		})
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", string(c.breaker.State()))
		}
		if err != nil {
			return nil, err
		}
		if permanent != nil {
			return nil, permanent
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Auth-Token", c.token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) buildURL(path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	if encoded := query.Encode(); encoded != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(encoded)
	}
	return buf.String()
}

func scopePath(scope competition.Scope, resource string) string {
	return fmt.Sprintf("/competitions/%s/%s", url.PathEscape(scope.CompetitionCode), resource)
}

func seasonQuery(scope competition.Scope) url.Values {
	return url.Values{"season": []string{strconv.Itoa(scope.SeasonStartYear)}}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 256 {
		return body[:256] + "..."
	}
	return body
}
