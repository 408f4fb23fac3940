// SPDX-License-Identifier: MIT

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/katalvlaran/labyrinth/core"
	"github.com/katalvlaran/labyrinth/internal/metrics"
)

// DefaultTimeout bounds one HTTP round trip.
const DefaultTimeout = 30 * time.Second

// HTTPClient is the JSON implementation of Client.
type HTTPClient struct {
	base         string
	team         string
	accessID     string
	accessSecret string
	hc           *http.Client
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithTeamID sends id in every request body.
func WithTeamID(id string) HTTPOption {
	return func(c *HTTPClient) { c.team = id }
}

// WithAccess adds Cloudflare Access credentials. Both must be non-empty to
// take effect.
func WithAccess(clientID, clientSecret string) HTTPOption {
	return func(c *HTTPClient) { c.accessID, c.accessSecret = clientID, clientSecret }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// NewHTTPClient returns a client for the service at baseURL.
func NewHTTPClient(baseURL string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type selectRequest struct {
	ID          string `json:"id,omitempty"`
	ProblemName string `json:"problemName"`
}

type selectResponse struct {
	SessionID   string `json:"session_id"`
	ProblemName string `json:"problemName"`
}

type exploreRequest struct {
	ID        string   `json:"id,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	Plans     []string `json:"plans"`
}

type guessRequest struct {
	ID        string    `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Map       *core.Map `json:"map"`
}

type guessResponse struct {
	Correct bool `json:"correct"`
}

// Select opens a session. Services that key sessions by team id return no
// session id; the team id stands in for it.
func (c *HTTPClient) Select(ctx context.Context, problem string) (string, error) {
	var res selectResponse
	if err := c.do(ctx, http.MethodPost, "select", "/select",
		selectRequest{ID: c.team, ProblemName: problem}, &res); err != nil {
		return "", err
	}
	if res.ProblemName != "" && res.ProblemName != problem {
		return "", fmt.Errorf("%w: selected %q, want %q", ErrBadResponse, res.ProblemName, problem)
	}
	if res.SessionID == "" {
		return c.team, nil
	}

	return res.SessionID, nil
}

// Explore runs a batch of encoded plans.
func (c *HTTPClient) Explore(ctx context.Context, session string, plans []string) (ExploreResult, error) {
	var res ExploreResult
	err := c.do(ctx, http.MethodPost, "explore", "/explore",
		exploreRequest{ID: c.team, SessionID: c.sessionField(session), Plans: plans}, &res)

	return res, err
}

// Guess submits m.
func (c *HTTPClient) Guess(ctx context.Context, session string, m *core.Map) (bool, error) {
	var res guessResponse
	if err := c.do(ctx, http.MethodPost, "guess", "/guess",
		guessRequest{ID: c.team, SessionID: c.sessionField(session), Map: m}, &res); err != nil {
		return false, err
	}

	return res.Correct, nil
}

// Abort ends session.
func (c *HTTPClient) Abort(ctx context.Context, session string) error {
	return c.do(ctx, http.MethodPut, "abort", "/sessions/"+url.PathEscape(session)+"/abort", nil, nil)
}

func (c *HTTPClient) sessionField(session string) string {
	if session == c.team {
		return ""
	}

	return session
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("oracle: marshal %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("oracle: build %s request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessID != "" && c.accessSecret != "" {
		req.Header.Set("CF-Access-Client-Id", c.accessID)
		req.Header.Set("CF-Access-Client-Secret", c.accessSecret)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		metrics.RecordOracleRequest(endpoint, 0, time.Since(start))
		return fmt.Errorf("oracle: send %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordOracleRequest(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s returned %d: %s", ErrStatus, endpoint, resp.StatusCode, strings.TrimSpace(string(text)))
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrBadResponse, endpoint, err)
	}

	return nil
}
