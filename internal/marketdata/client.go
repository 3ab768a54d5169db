package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"product-pricing-service/internal/metrics"
	domain "product-pricing-service/pkg/types"
)

const defaultFetchLimit = 25

// ScrapeClient implements Source against a scraper-API endpoint that
// returns raw listing records for one marketplace. Transport details of the
// scraping itself live behind that endpoint; this client only speaks JSON.
type ScrapeClient struct {
	platform domain.Platform
	baseURL  string
	apiKey   string
	client   *http.Client
	limiter  *QuotaLimiter
}

// ScrapeOption configures the ScrapeClient.
type ScrapeOption func(*ScrapeClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) ScrapeOption {
	return func(c *ScrapeClient) {
		c.client = hc
	}
}

// WithAPIKey sets the scrape API key header value.
func WithAPIKey(key string) ScrapeOption {
	return func(c *ScrapeClient) {
		c.apiKey = key
	}
}

// WithQuotaLimiter injects a limiter that bounds per-second and daily API
// usage. When set, every Fetch() goes through Wait() first.
func WithQuotaLimiter(q *QuotaLimiter) ScrapeOption {
	return func(c *ScrapeClient) {
		c.limiter = q
	}
}

// NewScrapeClient creates a scrape API client for one platform.
func NewScrapeClient(platform domain.Platform, baseURL string, opts ...ScrapeOption) *ScrapeClient {
	c := &ScrapeClient{
		platform: platform,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Platform implements Source.
func (c *ScrapeClient) Platform() domain.Platform { return c.platform }

type scrapeAPIResponse struct {
	Listings []RawListing `json:"listings"`
}

// Fetch implements Source by querying the scrape API.
func (c *ScrapeClient) Fetch(ctx context.Context, req FetchRequest) ([]RawListing, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyQuotaExceeded) {
				metrics.ScrapeQuotaHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.ScrapeCallsTotal.WithLabelValues(string(c.platform)).Inc()
		metrics.ScrapeDailyUsage.Set(float64(c.limiter.DailyCount()))
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	u := fmt.Sprintf("%s/listings?platform=%s&q=%s&limit=%s",
		c.baseURL,
		url.QueryEscape(string(c.platform)),
		url.QueryEscape(req.Query),
		strconv.Itoa(limit),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing fetch request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp scrapeAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing scrape response: %w", err)
	}

	return apiResp.Listings, nil
}
