// Package marketdata provides marketplace listing sources behind interfaces
// for testability, and the normalizer that converts their raw heterogeneous
// records into domain listings.
package marketdata

import (
	"context"

	domain "product-pricing-service/pkg/types"
)

// RawListing is one record as returned by a scraper or marketplace API.
// Field names and value shapes vary per platform; the normalizer is the
// sole adapter boundary that turns these into domain listings.
type RawListing map[string]any

// FetchRequest describes one comparable-listing search.
type FetchRequest struct {
	Query string
	Limit int
}

// Source fetches raw listing records for one marketplace.
type Source interface {
	Platform() domain.Platform
	Fetch(ctx context.Context, req FetchRequest) ([]RawListing, error)
}

// StaticSource serves a fixed record set; used in tests and the offline CLI
// path.
type StaticSource struct {
	Name    domain.Platform
	Records []RawListing
	Err     error
}

// Platform implements Source.
func (s *StaticSource) Platform() domain.Platform { return s.Name }

// Fetch implements Source.
func (s *StaticSource) Fetch(_ context.Context, _ FetchRequest) ([]RawListing, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records, nil
}
