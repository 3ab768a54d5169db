// Package cache provides the listing snapshot cache. Scraped raw listing
// sets are cached per (platform, query) with a TTL so repeated pricing
// requests for the same product do not re-hit the scrapers.
package cache

import (
	"context"

	"product-pricing-service/internal/marketdata"
	domain "product-pricing-service/pkg/types"
)

// SnapshotCache stores raw listing snapshots keyed by platform and query.
type SnapshotCache interface {
	// Get returns the cached snapshot and whether it was present. A miss
	// is (nil, false, nil), not an error.
	Get(ctx context.Context, platform domain.Platform, query string) ([]marketdata.RawListing, bool, error)
	Set(ctx context.Context, platform domain.Platform, query string, records []marketdata.RawListing) error
	Ping(ctx context.Context) error
	Close() error
}

// Noop is a SnapshotCache that caches nothing; used when redis is disabled.
type Noop struct{}

// Get implements SnapshotCache.
func (Noop) Get(context.Context, domain.Platform, string) ([]marketdata.RawListing, bool, error) {
	return nil, false, nil
}

// Set implements SnapshotCache.
func (Noop) Set(context.Context, domain.Platform, string, []marketdata.RawListing) error {
	return nil
}

// Ping implements SnapshotCache.
func (Noop) Ping(context.Context) error { return nil }

// Close implements SnapshotCache.
func (Noop) Close() error { return nil }
