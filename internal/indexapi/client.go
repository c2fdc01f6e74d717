// Package indexapi is an HTTP client for the podcast index web API
// endpoints used by the landing page.
package indexapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m1ck43l/web-ui/pkg/core"
	"golang.org/x/time/rate"
)

// Endpoint paths relative to the base URL.
const (
	StatsPath          = "/api/stats"
	RecentEpisodesPath = "/api/recent/episodes"
)

// DefaultTimeout bounds a single request when Config.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 256

// Config holds client settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64
	Logger    *slog.Logger
	// HTTPClient overrides the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client implements core.Source over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ core.Source = (*Client)(nil)

// New creates a client for the API rooted at cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		baseURL:    base,
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 2 {
			burst = 2
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// statsBody mirrors core.StatsSnapshot with pointer fields so absent keys
// can be told apart from empty counters.
type statsBody struct {
	FeedCountTotal  *core.Count `json:"feedCountTotal"`
	FeedCount3Days  *core.Count `json:"feedCount3days"`
	FeedCount10Days *core.Count `json:"feedCount10days"`
	FeedCount30Days *core.Count `json:"feedCount30days"`
	FeedCount60Days *core.Count `json:"feedCount60days"`
	FeedCount90Days *core.Count `json:"feedCount90days"`
}

// snapshot returns the counters, or an ErrDecode naming the first absent key.
func (b statsBody) snapshot() (core.StatsSnapshot, error) {
	fields := []struct {
		key   string
		value *core.Count
	}{
		{"feedCountTotal", b.FeedCountTotal},
		{"feedCount3days", b.FeedCount3Days},
		{"feedCount10days", b.FeedCount10Days},
		{"feedCount30days", b.FeedCount30Days},
		{"feedCount60days", b.FeedCount60Days},
		{"feedCount90days", b.FeedCount90Days},
	}
	for _, f := range fields {
		if f.value == nil {
			return core.StatsSnapshot{}, fmt.Errorf("stats response missing %s: %w", f.key, core.ErrDecode)
		}
	}

	return core.StatsSnapshot{
		FeedCountTotal:  *b.FeedCountTotal,
		FeedCount3Days:  *b.FeedCount3Days,
		FeedCount10Days: *b.FeedCount10Days,
		FeedCount30Days: *b.FeedCount30Days,
		FeedCount60Days: *b.FeedCount60Days,
		FeedCount90Days: *b.FeedCount90Days,
	}, nil
}

// Stats fetches the aggregate feed counters. Every counter key must be
// present; a null body or a missing key is a decode failure.
func (c *Client) Stats(ctx context.Context) (core.StatsSnapshot, error) {
	var body statsBody
	if err := c.getJSON(ctx, StatsPath, nil, &body); err != nil {
		return core.StatsSnapshot{}, err
	}
	return body.snapshot()
}

// RecentEpisodes fetches at most max recent episodes in server order.
// Extra items from a server that ignores max are dropped.
func (c *Client) RecentEpisodes(ctx context.Context, max int) ([]core.EpisodeSummary, error) {
	q := url.Values{}
	q.Set("max", strconv.Itoa(max))

	var body struct {
		Items *[]core.EpisodeSummary `json:"items"`
	}
	if err := c.getJSON(ctx, RecentEpisodesPath, q, &body); err != nil {
		return nil, err
	}
	if body.Items == nil {
		return nil, fmt.Errorf("recent episodes response has no items: %w", core.ErrDecode)
	}

	items := *body.Items
	if max > 0 && len(items) > max {
		c.logger.Debug("trimming recent episodes to max", "received", len(items), "max", max)
		items = items[:max]
	}
	return items, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if q != nil {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// getJSON performs a GET and decodes a JSON body into out.
// Transport errors and non-2xx statuses wrap core.ErrNetwork; body
// errors wrap core.ErrDecode.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait for %s: %w: %w", path, core.ErrNetwork, err)
		}
	}

	target := c.endpoint(path, q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w: %w", path, core.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("index api response",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("GET %s: unexpected status %d %q: %w",
			path, resp.StatusCode, strings.TrimSpace(string(snippet)), core.ErrNetwork)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: invalid JSON body: %w: %w", path, core.ErrDecode, err)
	}
	return nil
}
