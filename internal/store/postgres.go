package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "product-pricing-service/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateProduct inserts a new product. A missing ID is generated.
func (s *PostgresStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProductDraft
	}

	args := pgx.NamedArgs{
		"id":              p.ID,
		"title":           p.Title,
		"category":        p.Category,
		"brand":           p.Brand,
		"condition_grade": p.ConditionGrade,
		"condition_score": p.ConditionScore,
		"status":          string(p.Status),
	}

	if err := s.pool.QueryRow(ctx, queryCreateProduct, args).
		Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by its UUID.
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p := &domain.Product{}
	err := scanProduct(s.pool.QueryRow(ctx, queryGetProduct, id), p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts queries products with optional filters, returning results and
// the total count for the filter set.
func (s *PostgresStore) ListProducts(
	ctx context.Context,
	opts *ProductQuery,
) ([]domain.Product, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProductRow(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct updates a product's mutable fields.
func (s *PostgresStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	args := pgx.NamedArgs{
		"id":              p.ID,
		"title":           p.Title,
		"category":        p.Category,
		"brand":           p.Brand,
		"condition_grade": p.ConditionGrade,
		"condition_score": p.ConditionScore,
		"status":          string(p.Status),
	}

	err := s.pool.QueryRow(ctx, queryUpdateProduct, args).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return nil
}

// DeleteProduct removes a product and, via cascade, its analyses.
func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProduct, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProductsByStatus returns product counts grouped by lifecycle status.
func (s *PostgresStore) CountProductsByStatus(
	ctx context.Context,
) (map[domain.ProductStatus]int, error) {
	rows, err := s.pool.Query(ctx, queryCountProductsByStatus)
	if err != nil {
		return nil, fmt.Errorf("counting products by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.ProductStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[domain.ProductStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	return counts, nil
}

// SaveAnalysis persists a pricing analysis for a product. The analysis body
// is stored as JSONB.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, a *domain.AnalysisRecord) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	body, err := json.Marshal(a.Analysis)
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}

	args := pgx.NamedArgs{
		"id":         a.ID,
		"product_id": a.ProductID,
		"strategy":   string(a.Strategy),
		"position":   string(a.Position),
		"analysis":   body,
	}

	if err := s.pool.QueryRow(ctx, querySaveAnalysis, args).Scan(&a.CreatedAt); err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves a single analysis by ID.
func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*domain.AnalysisRecord, error) {
	a := &domain.AnalysisRecord{}
	if err := scanAnalysis(s.pool.QueryRow(ctx, queryGetAnalysis, id), a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnalyses returns the most recent analyses for a product, newest first.
func (s *PostgresStore) ListAnalyses(
	ctx context.Context,
	productID string,
	limit int,
) ([]domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListAnalyses, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var records []domain.AnalysisRecord
	for rows.Next() {
		var a domain.AnalysisRecord
		if err := scanAnalysisRow(rows, &a); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating analyses: %w", err)
	}

	return records, nil
}

// LatestAnalysis returns the newest analysis for a product, or ErrNotFound.
func (s *PostgresStore) LatestAnalysis(
	ctx context.Context,
	productID string,
) (*domain.AnalysisRecord, error) {
	a := &domain.AnalysisRecord{}
	if err := scanAnalysis(s.pool.QueryRow(ctx, queryLatestAnalysis, productID), a); err != nil {
		return nil, err
	}
	return a, nil
}

// pgx.Row and pgx.Rows share a Scan method; this lets scan helpers serve both.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner, p *domain.Product) error {
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Brand,
		&p.ConditionGrade, &p.ConditionScore, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("scanning product: %w", err)
	}
	return nil
}

func scanProductRow(rows pgx.Rows, p *domain.Product) error {
	return rows.Scan(
		&p.ID, &p.Title, &p.Category, &p.Brand,
		&p.ConditionGrade, &p.ConditionScore, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func scanAnalysis(row scanner, a *domain.AnalysisRecord) error {
	var body []byte
	err := row.Scan(&a.ID, &a.ProductID, &a.Strategy, &a.Position, &body, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("scanning analysis: %w", err)
	}
	if err := json.Unmarshal(body, &a.Analysis); err != nil {
		return fmt.Errorf("decoding analysis body: %w", err)
	}
	return nil
}

func scanAnalysisRow(rows pgx.Rows, a *domain.AnalysisRecord) error {
	var body []byte
	if err := rows.Scan(&a.ID, &a.ProductID, &a.Strategy, &a.Position, &body, &a.CreatedAt); err != nil {
		return err
	}
	if err := json.Unmarshal(body, &a.Analysis); err != nil {
		return fmt.Errorf("decoding analysis body: %w", err)
	}
	return nil
}
