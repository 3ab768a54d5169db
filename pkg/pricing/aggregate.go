package pricing

import (
	"sort"

	domain "product-pricing-service/pkg/types"
)

// Distribution bucket boundaries. Fixed business constants, not
// user-configurable; the buckets feed display only, never computation.
var bucketBounds = []struct {
	label string
	max   float64 // exclusive upper bound, 0 means unbounded
}{
	{"under_25", 25},
	{"25_50", 50},
	{"50_100", 100},
	{"100_250", 250},
	{"250_500", 500},
	{"500_plus", 0},
}

// Aggregate computes robust summary statistics over the pooled listing set.
// Listings from all platforms are pooled into one price set; platforms are
// not weighted by reliability. Listings with price <= 0 are excluded from
// every statistic. An empty filtered set yields zeroed statistics flagged
// as insufficient data.
func Aggregate(listings []domain.Listing) domain.PriceStatistics {
	prices := positivePrices(listings)

	stats := domain.PriceStatistics{
		Count:        len(prices),
		Distribution: distribution(prices),
	}

	if len(prices) == 0 {
		stats.InsufficientData = true
		return stats
	}

	sort.Float64s(prices)

	stats.Median = median(prices)
	stats.Min = prices[0]
	stats.Max = prices[len(prices)-1]

	var sum float64
	for _, p := range prices {
		sum += p
	}
	stats.Mean = sum / float64(len(prices))

	return stats
}

// BasePrice returns the median of the pooled positive prices. The median is
// chosen over the mean to resist outlier listings such as mis-scraped
// prices and bundles. Returns 0 when no listing has a positive price.
func BasePrice(listings []domain.Listing) float64 {
	prices := positivePrices(listings)
	if len(prices) == 0 {
		return 0
	}
	sort.Float64s(prices)
	return median(prices)
}

// median expects prices sorted ascending. Even-length sets average the two
// middle values.
func median(prices []float64) float64 {
	n := len(prices)
	mid := n / 2
	if n%2 == 0 {
		return (prices[mid-1] + prices[mid]) / 2
	}
	return prices[mid]
}

func positivePrices(listings []domain.Listing) []float64 {
	prices := make([]float64, 0, len(listings))
	for i := range listings {
		if listings[i].Price > 0 {
			prices = append(prices, listings[i].Price)
		}
	}
	return prices
}

func distribution(prices []float64) []domain.PriceBucket {
	buckets := make([]domain.PriceBucket, len(bucketBounds))
	for i, b := range bucketBounds {
		buckets[i].Label = b.label
	}

	for _, p := range prices {
		for i, b := range bucketBounds {
			if b.max == 0 || p < b.max {
				buckets[i].Count++
				break
			}
		}
	}

	return buckets
}
