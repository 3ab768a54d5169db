package marketdata_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-pricing-service/internal/marketdata"
)

func TestQuotaLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{name: "allows calls within rate", rate: 100, burst: 10, daily: 5000, calls: 3},
		{name: "allows burst", rate: 100, burst: 5, daily: 5000, calls: 5},
		{name: "rejects when daily quota reached", rate: 100, burst: 10, daily: 2, calls: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := marketdata.NewQuotaLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = q.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.Error(t, lastErr)
				assert.ErrorIs(t, lastErr, marketdata.ErrDailyQuotaExceeded)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestQuotaLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	now := time.Now()
	q := marketdata.NewQuotaLimiter(1000, 10, 2,
		marketdata.WithQuotaNowFunc(func() time.Time { return now }),
	)

	ctx := context.Background()
	require.NoError(t, q.Wait(ctx))
	require.NoError(t, q.Wait(ctx))
	require.ErrorIs(t, q.Wait(ctx), marketdata.ErrDailyQuotaExceeded)

	// Advancing past the 24h window resets the counter.
	now = now.Add(25 * time.Hour)
	require.NoError(t, q.Wait(ctx))
	assert.Equal(t, int64(1), q.DailyCount())
}

func TestQuotaLimiter_Remaining(t *testing.T) {
	t.Parallel()

	q := marketdata.NewQuotaLimiter(1000, 10, 3)
	assert.Equal(t, int64(3), q.Remaining())

	require.NoError(t, q.Wait(context.Background()))
	assert.Equal(t, int64(2), q.Remaining())
}

func TestQuotaLimiter_CanceledContext(t *testing.T) {
	t.Parallel()

	// A tiny rate with an empty bucket forces Wait to block, so the
	// canceled context must surface as an error.
	q := marketdata.NewQuotaLimiter(0.001, 1, 100)
	require.NoError(t, q.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, q.Wait(ctx))
}
