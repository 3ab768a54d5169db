package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domain "product-pricing-service/pkg/types"
)

// HTTPProvider implements Provider against a trend-analysis API endpoint.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// HTTPOption configures the HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		p.client = hc
	}
}

// WithAPIKey sets the API key header value.
func WithAPIKey(key string) HTTPOption {
	return func(p *HTTPProvider) {
		p.apiKey = key
	}
}

// NewHTTPProvider creates a trend API client.
func NewHTTPProvider(baseURL string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type trendAPIResponse struct {
	Direction  string   `json:"direction"`
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors"`
}

// MarketTrends implements Provider by querying the trend API.
func (p *HTTPProvider) MarketTrends(
	ctx context.Context,
	query string,
) (domain.MarketTrends, error) {
	u := fmt.Sprintf("%s/trends?q=%s", p.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return domain.MarketTrends{}, fmt.Errorf("creating HTTP request: %w", err)
	}

	if p.apiKey != "" {
		req.Header.Set("X-API-Key", p.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.MarketTrends{}, fmt.Errorf("executing trend request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.MarketTrends{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.MarketTrends{}, fmt.Errorf(
			"trend API error (status %d): %s", resp.StatusCode, string(body),
		)
	}

	var apiResp trendAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return domain.MarketTrends{}, fmt.Errorf("parsing trend response: %w", err)
	}

	return domain.MarketTrends{
		Direction:  domain.TrendDirection(apiResp.Direction),
		Confidence: apiResp.Confidence,
		Factors:    apiResp.Factors,
	}, nil
}
