package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-pricing-service/internal/api/handlers"
	"product-pricing-service/internal/store"
	domain "product-pricing-service/pkg/types"
)

func newProductsAPI(t *testing.T) (humatest.TestAPI, *store.MemoryStore) {
	t.Helper()

	s := store.NewMemoryStore()
	_, api := humatest.New(t)
	handlers.RegisterProductRoutes(api, handlers.NewProductsHandler(s))

	return api, s
}

func seedProduct(t *testing.T, s *store.MemoryStore) *domain.Product {
	t.Helper()

	p := &domain.Product{
		Title:          "Nintendo Switch OLED Model White",
		Category:       "electronics",
		Brand:          "nintendo",
		ConditionGrade: "good",
		Status:         domain.ProductActive,
	}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
}

func TestProductsHandler_Create(t *testing.T) {
	t.Parallel()

	api, _ := newProductsAPI(t)

	resp := api.Post("/api/v1/products", map[string]any{
		"title":           "LEGO Millennium Falcon 75192",
		"category":        "toys_games",
		"brand":           "lego",
		"condition_grade": "new_in_package",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var created domain.Product
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.ProductDraft, created.Status)
	assert.Equal(t, "lego", created.Brand)
}

func TestProductsHandler_Create_MissingTitle(t *testing.T) {
	t.Parallel()

	api, _ := newProductsAPI(t)

	resp := api.Post("/api/v1/products", map[string]any{
		"category": "electronics",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestProductsHandler_Get(t *testing.T) {
	t.Parallel()

	api, s := newProductsAPI(t)
	p := seedProduct(t, s)

	resp := api.Get("/api/v1/products/" + p.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), p.Title)

	resp = api.Get("/api/v1/products/00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProductsHandler_List(t *testing.T) {
	t.Parallel()

	api, s := newProductsAPI(t)
	seedProduct(t, s)

	sold := seedProduct(t, s)
	sold.Status = domain.ProductSold
	sold.Title = "Switch Pro Controller"
	require.NoError(t, s.UpdateProduct(context.Background(), sold))

	resp := api.Get("/api/v1/products")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)

	resp = api.Get("/api/v1/products?status=sold")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
	assert.Contains(t, resp.Body.String(), "Switch Pro Controller")

	resp = api.Get("/api/v1/products?search=controller")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":1`)
}

func TestProductsHandler_Update(t *testing.T) {
	t.Parallel()

	api, s := newProductsAPI(t)
	p := seedProduct(t, s)

	resp := api.Put("/api/v1/products/"+p.ID, map[string]any{
		"title":           p.Title,
		"category":        p.Category,
		"brand":           p.Brand,
		"condition_grade": "like_new",
		"status":          "listed",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	got, err := s.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProductListed, got.Status)
	assert.Equal(t, "like_new", got.ConditionGrade)
}

func TestProductsHandler_Delete(t *testing.T) {
	t.Parallel()

	api, s := newProductsAPI(t)
	p := seedProduct(t, s)

	resp := api.Delete("/api/v1/products/" + p.ID)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Delete("/api/v1/products/" + p.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProductsHandler_ListAnalyses(t *testing.T) {
	t.Parallel()

	api, s := newProductsAPI(t)
	p := seedProduct(t, s)
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, &domain.AnalysisRecord{
		ProductID: p.ID,
		Strategy:  domain.StrategyBalanced,
		Position:  domain.PositionCompetitive,
		Analysis:  domain.PricingAnalysis{RecommendedPrice: 41.37},
	}))

	resp := api.Get("/api/v1/products/" + p.ID + "/analyses")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"recommended_price":41.37`)

	resp = api.Get("/api/v1/products/00000000-0000-0000-0000-000000000000/analyses")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProductsHandler_ListAnalyses_Empty(t *testing.T) {
	t.Parallel()

	api, s := newProductsAPI(t)
	p := seedProduct(t, s)

	resp := api.Get("/api/v1/products/" + p.ID + "/analyses")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"analyses":[]`)
}
