// Package metrics defines Prometheus metrics for the product pricing
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricer"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Pricing analysis metrics.
var (
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of pricing analyses in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total number of pricing analyses computed.",
	})

	AnalysesInsufficientTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_insufficient_total",
		Help:      "Total number of analyses with zero valid-priced comparables.",
	})

	ComparablesPerAnalysis = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "comparables_per_analysis",
		Help:      "Number of positive-priced comparables per analysis.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)

// Collaborator metrics.
var (
	SourceFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_failures_total",
		Help:      "Total number of failed listing-source fetches.",
	}, []string{"platform"})

	TrendDegradedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trend_degraded_total",
		Help:      "Total number of analyses that fell back to the default trend signal.",
	})
)

// Scrape API metrics.
var (
	ScrapeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scrape_calls_total",
		Help:      "Total cumulative scrape API calls.",
	}, []string{"platform"})

	ScrapeDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scrape_daily_usage",
		Help:      "Current scrape API call count within the rolling 24-hour window.",
	})

	ScrapeQuotaHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scrape_quota_hits_total",
		Help:      "Total number of times the daily scrape quota was reached.",
	})
)

// Snapshot cache metrics.
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_hits_total",
		Help:      "Total number of listing snapshot cache hits.",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_cache_misses_total",
		Help:      "Total number of listing snapshot cache misses.",
	})
)

// Inventory metrics.
var (
	InventoryProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "inventory_products",
		Help:      "Number of products currently stored.",
	})
)

// Health probe gauges (1 = up, 0 = down).
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the liveness probe is passing.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the readiness probe is passing.",
	})
)
