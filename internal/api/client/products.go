package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "product-pricing-service/pkg/types"
)

// ProductsResponse wraps a paginated products response.
type ProductsResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListProductsParams defines query parameters for product queries.
type ListProductsParams struct {
	Status   string
	Category string
	Brand    string
	Search   string
	Limit    int
	Offset   int
	OrderBy  string
}

// ListProducts returns products matching the given parameters.
func (c *Client) ListProducts(
	ctx context.Context,
	params *ListProductsParams,
) (*ProductsResponse, error) {
	q := url.Values{}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.Brand != "" {
		q.Set("brand", params.Brand)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ProductsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, fmt.Sprintf("/api/v1/products/%s", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct creates a new product and returns it with its assigned ID.
func (c *Client) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var created domain.Product
	if err := c.post(ctx, "/api/v1/products", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct updates an existing product.
func (c *Client) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var updated domain.Product
	if err := c.put(ctx, fmt.Sprintf("/api/v1/products/%s", p.ID), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct deletes a product by ID.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.del(ctx, fmt.Sprintf("/api/v1/products/%s", id), nil)
}

// ListProductAnalyses returns the persisted analyses for a product.
func (c *Client) ListProductAnalyses(
	ctx context.Context,
	productID string,
	limit int,
) ([]domain.AnalysisRecord, error) {
	path := fmt.Sprintf("/api/v1/products/%s/analyses", productID)
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp struct {
		Analyses []domain.AnalysisRecord `json:"analyses"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Analyses, nil
}
