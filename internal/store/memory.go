package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "product-pricing-service/pkg/types"
)

// MemoryStore is an in-memory Store for tests and the one-shot CLI path.
// It applies the same filtering and ordering semantics as PostgresStore.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]domain.Product
	analyses map[string][]domain.AnalysisRecord // keyed by product ID, newest first
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]domain.Product),
		analyses: make(map[string][]domain.AnalysisRecord),
		now:      time.Now,
	}
}

// CreateProduct implements Store.
func (s *MemoryStore) CreateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProductDraft
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.products[p.ID] = *p
	return nil
}

// GetProduct implements Store.
func (s *MemoryStore) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// ListProducts implements Store.
func (s *MemoryStore) ListProducts(
	_ context.Context,
	opts *ProductQuery,
) ([]domain.Product, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Product
	for _, p := range s.products {
		if opts.Status != nil && string(p.Status) != *opts.Status {
			continue
		}
		if opts.Category != nil && p.Category != *opts.Category {
			continue
		}
		if opts.Brand != nil && p.Brand != *opts.Brand {
			continue
		}
		if opts.Search != nil &&
			!strings.Contains(strings.ToLower(p.Title), strings.ToLower(*opts.Search)) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	sortProducts(matched, opts.OrderBy)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := max(opts.Offset, 0)

	if offset >= len(matched) {
		return nil, total, nil
	}
	end := min(offset+limit, len(matched))

	return matched[offset:end], total, nil
}

func sortProducts(products []domain.Product, orderBy string) {
	switch orderBy {
	case orderByTitle:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	case orderByUpdated:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UpdatedAt.After(products[j].UpdatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// UpdateProduct implements Store.
func (s *MemoryStore) UpdateProduct(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()

	s.products[p.ID] = *p
	return nil
}

// DeleteProduct implements Store.
func (s *MemoryStore) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	delete(s.analyses, id)
	return nil
}

// CountProductsByStatus implements Store.
func (s *MemoryStore) CountProductsByStatus(
	_ context.Context,
) (map[domain.ProductStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[domain.ProductStatus]int)
	for _, p := range s.products {
		counts[p.Status]++
	}
	return counts, nil
}

// SaveAnalysis implements Store.
func (s *MemoryStore) SaveAnalysis(_ context.Context, a *domain.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = s.now()

	s.analyses[a.ProductID] = append([]domain.AnalysisRecord{*a}, s.analyses[a.ProductID]...)
	return nil
}

// GetAnalysis implements Store.
func (s *MemoryStore) GetAnalysis(_ context.Context, id string) (*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, records := range s.analyses {
		for _, a := range records {
			if a.ID == id {
				return &a, nil
			}
		}
	}
	return nil, ErrNotFound
}

// ListAnalyses implements Store.
func (s *MemoryStore) ListAnalyses(
	_ context.Context,
	productID string,
	limit int,
) ([]domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultLimit
	}

	records := s.analyses[productID]
	if len(records) > limit {
		records = records[:limit]
	}

	out := make([]domain.AnalysisRecord, len(records))
	copy(out, records)
	return out, nil
}

// LatestAnalysis implements Store.
func (s *MemoryStore) LatestAnalysis(
	_ context.Context,
	productID string,
) (*domain.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.analyses[productID]
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	a := records[0]
	return &a, nil
}

// Migrate implements Store; nothing to do in memory.
func (s *MemoryStore) Migrate(context.Context) error { return nil }

// Ping implements Store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close implements Store.
func (s *MemoryStore) Close() {}
