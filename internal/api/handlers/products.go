package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"product-pricing-service/internal/store"
	domain "product-pricing-service/pkg/types"
)

// ProductsHandler handles product inventory CRUD.
type ProductsHandler struct {
	store store.Store
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(s store.Store) *ProductsHandler {
	return &ProductsHandler{store: s}
}

// --- Input/Output types ---

// ProductBody is the writable part of a product.
type ProductBody struct {
	Title          string   `json:"title"                     minLength:"1" doc:"Product title" example:"Nintendo Switch OLED Model White"`
	Category       string   `json:"category,omitempty"        doc:"Product category"            example:"electronics"`
	Brand          string   `json:"brand,omitempty"           doc:"Product brand"               example:"nintendo"`
	ConditionGrade string   `json:"condition_grade,omitempty" doc:"Condition grade"             example:"good"`
	ConditionScore *float64 `json:"condition_score,omitempty" minimum:"0"   maximum:"1"         doc:"Condition fine-tune score"`
	Status         string   `json:"status,omitempty"          enum:"draft,active,listed,sold,archived," doc:"Lifecycle status"`
}

func (b *ProductBody) apply(p *domain.Product) {
	p.Title = b.Title
	p.Category = b.Category
	p.Brand = b.Brand
	p.ConditionGrade = b.ConditionGrade
	p.ConditionScore = b.ConditionScore
	if b.Status != "" {
		p.Status = domain.ProductStatus(b.Status)
	}
}

// CreateProductInput is the input for creating a product.
type CreateProductInput struct {
	Body ProductBody
}

// ProductOutput is the response carrying a single product.
type ProductOutput struct {
	Body domain.Product
}

// GetProductInput is the input for getting a single product.
type GetProductInput struct {
	ID string `path:"id" doc:"Product UUID"`
}

// UpdateProductInput is the input for updating a product.
type UpdateProductInput struct {
	ID   string `path:"id" doc:"Product UUID"`
	Body ProductBody
}

// DeleteProductInput is the input for deleting a product.
type DeleteProductInput struct {
	ID string `path:"id" doc:"Product UUID"`
}

// DeleteProductOutput is the empty delete response.
type DeleteProductOutput struct{}

// ListProductsInput is the input for listing products with optional filters.
type ListProductsInput struct {
	Status   string `query:"status"   doc:"Filter by lifecycle status"     enum:"draft,active,listed,sold,archived,"`
	Category string `query:"category" doc:"Filter by category"`
	Brand    string `query:"brand"    doc:"Filter by brand"`
	Search   string `query:"search"   doc:"Title substring search"`
	Limit    int    `query:"limit"    doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
	Offset   int    `query:"offset"   doc:"Pagination offset"              minimum:"0"`
	OrderBy  string `query:"order_by" doc:"Sort field"                     enum:"created_at,updated_at,title,"`
}

// ListProductsOutput is the response for listing products.
type ListProductsOutput struct {
	Body struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
		Limit    int              `json:"limit"`
		Offset   int              `json:"offset"`
	}
}

// ListProductAnalysesInput is the input for a product's analysis history.
type ListProductAnalysesInput struct {
	ID    string `path:"id"     doc:"Product UUID"`
	Limit int    `query:"limit" doc:"Number of results (default 50)" minimum:"1" maximum:"500"`
}

// ListProductAnalysesOutput is the response for a product's analysis history.
type ListProductAnalysesOutput struct {
	Body struct {
		Analyses []domain.AnalysisRecord `json:"analyses"`
	}
}

// --- Handlers ---

// CreateProduct creates a new inventory product.
func (h *ProductsHandler) CreateProduct(
	ctx context.Context,
	input *CreateProductInput,
) (*ProductOutput, error) {
	var p domain.Product
	input.Body.apply(&p)

	if err := h.store.CreateProduct(ctx, &p); err != nil {
		return nil, huma.Error500InternalServerError("creating product: " + err.Error())
	}

	return &ProductOutput{Body: p}, nil
}

// GetProduct returns a single product by ID.
func (h *ProductsHandler) GetProduct(
	ctx context.Context,
	input *GetProductInput,
) (*ProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("getting product: " + err.Error())
	}

	return &ProductOutput{Body: *p}, nil
}

// ListProducts returns products with optional filters and pagination.
func (h *ProductsHandler) ListProducts(
	ctx context.Context,
	input *ListProductsInput,
) (*ListProductsOutput, error) {
	q := &store.ProductQuery{
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.Status != "" {
		q.Status = &input.Status
	}

	if input.Category != "" {
		q.Category = &input.Category
	}

	if input.Brand != "" {
		q.Brand = &input.Brand
	}

	if input.Search != "" {
		q.Search = &input.Search
	}

	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	products, total, err := h.store.ListProducts(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("product query failed: " + err.Error())
	}

	if products == nil {
		products = []domain.Product{}
	}

	resp := &ListProductsOutput{}
	resp.Body.Products = products
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// UpdateProduct updates an existing product.
func (h *ProductsHandler) UpdateProduct(
	ctx context.Context,
	input *UpdateProductInput,
) (*ProductOutput, error) {
	p, err := h.store.GetProduct(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("getting product: " + err.Error())
	}

	input.Body.apply(p)

	if err := h.store.UpdateProduct(ctx, p); err != nil {
		return nil, huma.Error500InternalServerError("updating product: " + err.Error())
	}

	return &ProductOutput{Body: *p}, nil
}

// DeleteProduct deletes a product and its analysis history.
func (h *ProductsHandler) DeleteProduct(
	ctx context.Context,
	input *DeleteProductInput,
) (*DeleteProductOutput, error) {
	if err := h.store.DeleteProduct(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("deleting product: " + err.Error())
	}

	return &DeleteProductOutput{}, nil
}

// ListProductAnalyses returns the persisted analysis history for a product,
// newest first.
func (h *ProductsHandler) ListProductAnalyses(
	ctx context.Context,
	input *ListProductAnalysesInput,
) (*ListProductAnalysesOutput, error) {
	if _, err := h.store.GetProduct(ctx, input.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("product not found")
		}
		return nil, huma.Error500InternalServerError("getting product: " + err.Error())
	}

	analyses, err := h.store.ListAnalyses(ctx, input.ID, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing analyses: " + err.Error())
	}

	if analyses == nil {
		analyses = []domain.AnalysisRecord{}
	}

	resp := &ListProductAnalysesOutput{}
	resp.Body.Analyses = analyses
	return resp, nil
}

// RegisterProductRoutes registers product endpoints with the Huma API.
func RegisterProductRoutes(api huma.API, h *ProductsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-product",
		Method:        http.MethodPost,
		Path:          "/api/v1/products",
		Summary:       "Create a product",
		Description:   "Creates a new inventory product.",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns products with optional filters and pagination.",
		Tags:        []string{"products"},
	}, h.ListProducts)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Get a product by ID",
		Description: "Returns a single product by its UUID.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetProduct)

	huma.Register(api, huma.Operation{
		OperationID: "update-product",
		Method:      http.MethodPut,
		Path:        "/api/v1/products/{id}",
		Summary:     "Update a product",
		Description: "Updates an existing product by its UUID.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.UpdateProduct)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-product",
		Method:        http.MethodDelete,
		Path:          "/api/v1/products/{id}",
		Summary:       "Delete a product",
		Description:   "Deletes a product and its analysis history.",
		Tags:          []string{"products"},
		DefaultStatus: http.StatusNoContent,
		Errors:        []int{http.StatusNotFound},
	}, h.DeleteProduct)

	huma.Register(api, huma.Operation{
		OperationID: "list-product-analyses",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}/analyses",
		Summary:     "List a product's analyses",
		Description: "Returns the persisted pricing analyses for a product, newest first.",
		Tags:        []string{"products"},
		Errors:      []int{http.StatusNotFound},
	}, h.ListProductAnalyses)
}
