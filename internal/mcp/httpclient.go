package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/liftsight/internal/models"
)

// HTTPClient implements DataSource by calling the LiftSight REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

// rangeParams maps an arbitrary [start, end) window onto the REST API's
// range selector. The API filters server-side; days is rounded up so
// the window is always covered.
func rangeParams(start, end time.Time) url.Values {
	v := url.Values{}
	days := int(end.Sub(start).Hours()/24) + 1
	switch {
	case days <= 7:
		v.Set("range", "7d")
	case days <= 30:
		v.Set("range", "30d")
	default:
		v.Set("range", "90d")
	}
	return v
}

// QueryWorkouts retrieves workouts via the REST API. The server scopes
// data to the caller's identity, so userID is unused here.
func (c *HTTPClient) QueryWorkouts(ctx context.Context, start, end time.Time, _ int) ([]models.Workout, error) {
	body, err := c.get(ctx, "/api/v1/workouts", rangeParams(start, end))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Workouts []models.Workout `json:"workouts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}

	// The API's coarse range can be wider than asked; trim locally.
	out := resp.Workouts[:0:0]
	for _, w := range resp.Workouts {
		if !w.Date.Before(start) && w.Date.Before(end) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (c *HTTPClient) GetSplitConfig(ctx context.Context, _ int) (*models.SplitConfig, error) {
	body, err := c.get(ctx, "/api/v1/settings/split", nil)
	if err != nil {
		return nil, err
	}

	var cfg models.SplitConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("httpclient: decode split config: %w", err)
	}
	if cfg.Type == "" || cfg.Type == models.SplitNone {
		return nil, nil
	}
	return &cfg, nil
}
