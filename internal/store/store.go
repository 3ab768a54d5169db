// Package store defines the datastore abstraction for the pricing service.
// Business logic depends on the Store interface, never on concrete
// implementations, so the engine and API are testable without a running
// database.
package store

import (
	"context"
	"errors"

	domain "product-pricing-service/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ProductQuery defines optional filters for product queries.
type ProductQuery struct {
	Status   *string
	Category *string
	Brand    *string
	Search   *string // matched against title, case-insensitive
	Limit    int     // default 50
	Offset   int
	OrderBy  string // "created_at", "updated_at", "title"
}

// Store defines all data access operations for the pricing service.
type Store interface {
	// Products
	CreateProduct(ctx context.Context, p *domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, opts *ProductQuery) ([]domain.Product, int, error)
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	CountProductsByStatus(ctx context.Context) (map[domain.ProductStatus]int, error)

	// Analyses
	SaveAnalysis(ctx context.Context, a *domain.AnalysisRecord) error
	GetAnalysis(ctx context.Context, id string) (*domain.AnalysisRecord, error)
	ListAnalyses(ctx context.Context, productID string, limit int) ([]domain.AnalysisRecord, error)
	LatestAnalysis(ctx context.Context, productID string) (*domain.AnalysisRecord, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
	Close()
}
