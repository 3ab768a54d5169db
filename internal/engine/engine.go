// Package engine orchestrates the pricing pipeline: listing fetch, snapshot
// caching, normalization, similarity ranking, aggregation, the adjustment
// chain, and strategy selection.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"product-pricing-service/internal/cache"
	"product-pricing-service/internal/marketdata"
	"product-pricing-service/internal/metrics"
	"product-pricing-service/internal/trends"
	"product-pricing-service/pkg/pricing"
	domain "product-pricing-service/pkg/types"
)

const (
	defaultFetchTimeout   = 10 * time.Second
	defaultTrendTimeout   = 5 * time.Second
	defaultMaxComparables = 10
)

// ErrNoProduct is returned when the product context carries no title.
// This is the only error Analyze raises; every data-quality problem
// degrades to a low-confidence result instead.
var ErrNoProduct = errors.New("product context has no title")

// Result bundles the analysis with the ranked comparables behind it and the
// names of collaborators that degraded during the computation.
type Result struct {
	Analysis    domain.PricingAnalysis `json:"analysis"`
	Comparables []domain.Comparable    `json:"comparables"`
	Degraded    []string               `json:"degraded,omitempty"`
}

// Engine runs pricing analyses against injected collaborators.
type Engine struct {
	sources []marketdata.Source
	trends  trends.Provider
	cache   cache.SnapshotCache
	log     *slog.Logger

	fetchTimeout   time.Duration
	trendTimeout   time.Duration
	maxComparables int
}

// NewEngine creates a new Engine with injected dependencies. A nil trend
// provider degrades every analysis to the stable default signal.
func NewEngine(sources []marketdata.Source, tp trends.Provider, opts ...EngineOption) *Engine {
	eng := &Engine{
		sources:        sources,
		trends:         tp,
		cache:          cache.Noop{},
		log:            slog.Default(),
		fetchTimeout:   defaultFetchTimeout,
		trendTimeout:   defaultTrendTimeout,
		maxComparables: defaultMaxComparables,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithCache sets the listing snapshot cache.
func WithCache(c cache.SnapshotCache) EngineOption {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithFetchTimeout bounds each source fetch.
func WithFetchTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.fetchTimeout = d
	}
}

// WithTrendTimeout bounds the trend provider call.
func WithTrendTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.trendTimeout = d
	}
}

// WithMaxComparables caps how many ranked comparables a Result carries.
func WithMaxComparables(n int) EngineOption {
	return func(e *Engine) {
		e.maxComparables = n
	}
}

// Analyze prices a product against an already-collected listing set. The
// trend provider is still consulted; everything else is pure computation.
func (eng *Engine) Analyze(
	ctx context.Context,
	product domain.ProductContext,
	listings []domain.Listing,
	opts domain.PricingOptions,
) (*Result, error) {
	if product.Title == "" {
		return nil, ErrNoProduct
	}

	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	tr := trends.Resolve(ctx, eng.trends, product.Title, eng.trendTimeout)

	var degraded []string
	if tr.Degraded {
		degraded = append(degraded, "trends")
		metrics.TrendDegradedTotal.Inc()
		if tr.Err != nil {
			eng.log.Warn("trend provider degraded", "error", tr.Err)
		}
	}

	res := eng.compute(product, listings, opts, tr.Trends)
	res.Degraded = degraded
	return res, nil
}

// AnalyzeLive prices a product against listings fetched live from every
// configured source, fanning out concurrently with the trend call. A failed
// source drops out of the pool; it never fails the analysis.
func (eng *Engine) AnalyzeLive(
	ctx context.Context,
	product domain.ProductContext,
	opts domain.PricingOptions,
) (*Result, error) {
	if product.Title == "" {
		return nil, ErrNoProduct
	}

	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		listings []domain.Listing
		degraded []string
	)

	// Trend call runs alongside the source fan-out.
	var tr trends.Result
	wg.Add(1)
	go func() {
		defer wg.Done()
		tr = trends.Resolve(ctx, eng.trends, product.Title, eng.trendTimeout)
	}()

	for _, src := range eng.sources {
		wg.Add(1)
		go func(src marketdata.Source) {
			defer wg.Done()

			normalized, err := eng.fetchSource(ctx, src, product.Title)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				platform := src.Platform()
				eng.log.Warn("source fetch failed",
					"platform", platform,
					"error", err,
				)
				metrics.SourceFailuresTotal.WithLabelValues(string(platform)).Inc()
				degraded = append(degraded, "source:"+string(platform))
				return
			}
			listings = append(listings, normalized...)
		}(src)
	}

	wg.Wait()

	if tr.Degraded {
		degraded = append(degraded, "trends")
		metrics.TrendDegradedTotal.Inc()
		if tr.Err != nil {
			eng.log.Warn("trend provider degraded", "error", tr.Err)
		}
	}

	res := eng.compute(product, listings, opts, tr.Trends)
	res.Degraded = degraded
	return res, nil
}

// fetchSource returns normalized listings for one source, going through the
// snapshot cache. Cache errors count as misses; a fetched snapshot is cached
// best-effort.
func (eng *Engine) fetchSource(
	ctx context.Context,
	src marketdata.Source,
	query string,
) ([]domain.Listing, error) {
	platform := src.Platform()

	cached, hit, err := eng.cache.Get(ctx, platform, query)
	if err != nil {
		eng.log.Warn("snapshot cache read failed", "platform", platform, "error", err)
	}
	if hit {
		metrics.CacheHitsTotal.Inc()
		return marketdata.NormalizeAll(platform, cached), nil
	}
	metrics.CacheMissesTotal.Inc()

	fetchCtx, cancel := context.WithTimeout(ctx, eng.fetchTimeout)
	defer cancel()

	raws, err := src.Fetch(fetchCtx, marketdata.FetchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("fetching %s listings: %w", platform, err)
	}

	if err := eng.cache.Set(ctx, platform, query, raws); err != nil {
		eng.log.Warn("snapshot cache write failed", "platform", platform, "error", err)
	}

	return marketdata.NormalizeAll(platform, raws), nil
}

// compute runs the pure pipeline over a pooled listing set.
func (eng *Engine) compute(
	product domain.ProductContext,
	listings []domain.Listing,
	opts domain.PricingOptions,
	tr domain.MarketTrends,
) *Result {
	strategy := domain.ParseStrategy(string(opts.Strategy))
	position := domain.ParsePosition(string(opts.Position))

	comparables := pricing.RankComparables(product.Title, listings)
	if len(comparables) > eng.maxComparables {
		comparables = comparables[:eng.maxComparables]
	}

	stats := pricing.Aggregate(listings)
	basePrice := stats.Median

	competitive, conditionMult := pricing.CompetitivePrice(basePrice, product, position)
	velocity, margin := pricing.Bounds(competitive)
	recommended := pricing.SelectPrice(strategy, competitive, velocity, margin, tr)

	metrics.AnalysesTotal.Inc()
	metrics.ComparablesPerAnalysis.Observe(float64(stats.Count))
	if stats.InsufficientData {
		metrics.AnalysesInsufficientTotal.Inc()
		eng.log.Info("analysis with no usable comparables", "title", product.Title)
	}

	return &Result{
		Analysis: domain.PricingAnalysis{
			RecommendedPrice:    recommended,
			PriceRange:          domain.PriceRange{Min: velocity, Max: margin},
			CompetitivePosition: pricing.PositionLabel(recommended, basePrice),
			VelocityOptimized:   velocity,
			MarginOptimized:     margin,
			ConditionAdjustment: conditionMult,
			MarketTrends:        tr,
			ComparableAnalysis: domain.ComparableAnalysis{
				MedianPrice:       stats.Median,
				AveragePrice:      stats.Mean,
				TotalComparables:  stats.Count,
				PriceDistribution: stats.Distribution,
			},
		},
		Comparables: comparables,
	}
}
