package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"product-pricing-service/internal/marketdata"
	"product-pricing-service/internal/metrics"
	"product-pricing-service/internal/store"
)

// Scheduler refreshes system gauges on a fixed interval: inventory counts
// from the store and scrape quota usage from the configured limiters.
// Snapshot expiry is TTL-driven in the cache, so no purge job is needed.
type Scheduler struct {
	cron     *cron.Cron
	store    store.Store
	limiters []*marketdata.QuotaLimiter
	log      *slog.Logger
}

// NewScheduler creates a new Scheduler. The store may be nil when the
// service runs without persistence; the inventory gauge is skipped then.
func NewScheduler(
	s store.Store,
	limiters []*marketdata.QuotaLimiter,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	sched := &Scheduler{
		cron:     c,
		store:    s,
		limiters: limiters,
		log:      log,
	}

	if _, err := c.AddFunc(
		"@every "+interval.String(),
		sched.refreshGauges,
	); err != nil {
		return nil, err
	}

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) refreshGauges() {
	ctx := context.Background()
	s.RefreshGauges(ctx)
}

// RefreshGauges updates the inventory and scrape usage gauges once.
func (s *Scheduler) RefreshGauges(ctx context.Context) {
	if s.store != nil {
		counts, err := s.store.CountProductsByStatus(ctx)
		if err != nil {
			s.log.Error("refreshing inventory gauge failed", "error", err)
		} else {
			total := 0
			for _, n := range counts {
				total += n
			}
			metrics.InventoryProducts.Set(float64(total))
		}
	}

	var used int64
	for _, l := range s.limiters {
		used += l.DailyCount()
	}
	metrics.ScrapeDailyUsage.Set(float64(used))
}
