// Package trends defines the market-trend collaborator interface and its
// graceful-degradation wrapper. The pricing pipeline must keep working when
// the trend provider is down, so failures resolve to an explicit tagged
// result instead of an error.
package trends

import (
	"context"
	"time"

	domain "product-pricing-service/pkg/types"
)

// Provider fetches the market-trend signal for a search query.
type Provider interface {
	MarketTrends(ctx context.Context, query string) (domain.MarketTrends, error)
}

// Result is the outcome of a trend lookup. Degraded marks that the provider
// failed or timed out and the default signal was substituted; Err keeps the
// cause for logging, never for control flow.
type Result struct {
	Trends   domain.MarketTrends
	Degraded bool
	Err      error
}

// Default is the documented fallback signal used whenever the provider
// cannot answer.
func Default() domain.MarketTrends {
	return domain.MarketTrends{
		Direction:  domain.TrendStable,
		Confidence: 0.5,
		Factors:    []string{"insufficient data"},
	}
}

// Resolve calls the provider bounded by timeout and folds any failure into
// the default signal. A nil provider degrades immediately.
func Resolve(ctx context.Context, p Provider, query string, timeout time.Duration) Result {
	if p == nil {
		return Result{Trends: Default(), Degraded: true}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tr, err := p.MarketTrends(ctx, query)
	if err != nil {
		return Result{Trends: Default(), Degraded: true, Err: err}
	}

	return Result{Trends: sanitize(tr)}
}

// sanitize normalizes out-of-contract provider responses: unknown
// directions become stable and confidence is clamped to [0,1].
func sanitize(tr domain.MarketTrends) domain.MarketTrends {
	switch tr.Direction {
	case domain.TrendUp, domain.TrendDown, domain.TrendStable:
	default:
		tr.Direction = domain.TrendStable
	}

	if tr.Confidence < 0 {
		tr.Confidence = 0
	}
	if tr.Confidence > 1 {
		tr.Confidence = 1
	}

	return tr
}

// Static is a fixed-signal provider for tests and the offline CLI path.
type Static struct {
	Trends domain.MarketTrends
	Err    error
}

// MarketTrends implements Provider.
func (s *Static) MarketTrends(_ context.Context, _ string) (domain.MarketTrends, error) {
	if s.Err != nil {
		return domain.MarketTrends{}, s.Err
	}
	return s.Trends, nil
}
