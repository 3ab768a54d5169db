package marketdata

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyQuotaExceeded is returned when the scrape API's daily call quota
// has been exhausted.
var ErrDailyQuotaExceeded = errors.New("daily scrape quota exceeded")

// QuotaLimiter controls scrape API call rate and a daily usage quota. A
// token bucket handles per-second smoothing; daily usage is tracked in a
// rolling 24-hour window starting at the first call of each window.
type QuotaLimiter struct {
	limiter  *rate.Limiter
	daily    atomic.Int64
	maxDaily int64
	resetAt  time.Time
	mu       sync.Mutex
	nowFunc  func() time.Time
}

// QuotaLimiterOption configures the QuotaLimiter.
type QuotaLimiterOption func(*QuotaLimiter)

// WithQuotaNowFunc overrides the time function for testing.
func WithQuotaNowFunc(f func() time.Time) QuotaLimiterOption {
	return func(q *QuotaLimiter) {
		q.nowFunc = f
	}
}

// NewQuotaLimiter creates a limiter with the given per-second rate, burst
// size, and daily quota.
func NewQuotaLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...QuotaLimiterOption,
) *QuotaLimiter {
	q := &QuotaLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.resetAt = q.nowFunc().Add(24 * time.Hour)
	return q
}

// Wait blocks until the limiter allows the call or the context is canceled.
// Returns ErrDailyQuotaExceeded when the quota for the current window is
// spent.
func (q *QuotaLimiter) Wait(ctx context.Context) error {
	q.maybeResetWindow()

	if q.daily.Load() >= q.maxDaily {
		return fmt.Errorf("%w (%d/%d)", ErrDailyQuotaExceeded, q.daily.Load(), q.maxDaily)
	}

	if err := q.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	q.daily.Add(1)
	return nil
}

// DailyCount returns the call count in the current window.
func (q *QuotaLimiter) DailyCount() int64 {
	return q.daily.Load()
}

// Remaining returns the calls left in the current window.
func (q *QuotaLimiter) Remaining() int64 {
	remaining := q.maxDaily - q.daily.Load()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (q *QuotaLimiter) maybeResetWindow() {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.nowFunc()
	if now.After(q.resetAt) {
		q.daily.Store(0)
		q.resetAt = now.Add(24 * time.Hour)
	}
}
