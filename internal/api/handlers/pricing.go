package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"product-pricing-service/internal/engine"
	"product-pricing-service/internal/marketdata"
	"product-pricing-service/internal/store"
	domain "product-pricing-service/pkg/types"
)

// PricingHandler runs pricing analyses. The store is optional; when present,
// analyses for stored products are persisted.
type PricingHandler struct {
	engine *engine.Engine
	store  store.Store
}

// NewPricingHandler creates a new PricingHandler. Pass a nil store to
// disable persistence.
func NewPricingHandler(eng *engine.Engine, s store.Store) *PricingHandler {
	return &PricingHandler{engine: eng, store: s}
}

// --- Input/Output types ---

// ListingSetInput is one platform's worth of raw listing records supplied
// inline with an analyze request.
type ListingSetInput struct {
	Platform string                  `json:"platform" minLength:"1" doc:"Source marketplace" example:"ebay"`
	Records  []marketdata.RawListing `json:"records"  doc:"Raw listing records in source-specific shape"`
}

// AnalyzeInput is the request for a pricing analysis. The product may be
// given inline or referenced by product_id; inline listings skip the live
// source fetch.
type AnalyzeInput struct {
	Body struct {
		ProductID string                 `json:"product_id,omitempty" doc:"Analyze a stored product and persist the result" format:"uuid"`
		Product   *domain.ProductContext `json:"product,omitempty"    doc:"Inline product context"`
		Options   domain.PricingOptions  `json:"options,omitzero"     doc:"Strategy and competitive position"`
		Listings  []ListingSetInput      `json:"listings,omitempty"   doc:"Inline raw listings; when present, sources are not fetched"`
	}
}

// AnalyzeOutput is the response for a pricing analysis.
type AnalyzeOutput struct {
	Body struct {
		Analysis    domain.PricingAnalysis `json:"analysis"`
		Comparables []domain.Comparable    `json:"comparables"`
		Degraded    []string               `json:"degraded,omitempty" doc:"Collaborators that fell back to defaults"`
		AnalysisID  string                 `json:"analysis_id,omitempty" doc:"ID of the persisted analysis record"`
	}
}

// --- Handlers ---

// Analyze runs the pricing pipeline for a product.
func (h *PricingHandler) Analyze(
	ctx context.Context,
	input *AnalyzeInput,
) (*AnalyzeOutput, error) {
	product, err := h.resolveProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	var res *engine.Result
	if len(input.Body.Listings) > 0 {
		var pooled []domain.Listing
		for _, set := range input.Body.Listings {
			pooled = append(pooled, marketdata.NormalizeAll(
				domain.Platform(set.Platform), set.Records,
			)...)
		}
		res, err = h.engine.Analyze(ctx, product, pooled, input.Body.Options)
	} else {
		res, err = h.engine.AnalyzeLive(ctx, product, input.Body.Options)
	}
	if err != nil {
		if errors.Is(err, engine.ErrNoProduct) {
			return nil, huma.Error422UnprocessableEntity("product title is required")
		}
		return nil, huma.Error500InternalServerError("analysis failed: " + err.Error())
	}

	out := &AnalyzeOutput{}
	out.Body.Analysis = res.Analysis
	out.Body.Comparables = res.Comparables
	out.Body.Degraded = res.Degraded

	if input.Body.ProductID != "" && h.store != nil {
		rec := &domain.AnalysisRecord{
			ProductID: input.Body.ProductID,
			Strategy:  domain.ParseStrategy(string(input.Body.Options.Strategy)),
			Position:  domain.ParsePosition(string(input.Body.Options.Position)),
			Analysis:  res.Analysis,
		}
		if err := h.store.SaveAnalysis(ctx, rec); err != nil {
			return nil, huma.Error500InternalServerError("saving analysis: " + err.Error())
		}
		out.Body.AnalysisID = rec.ID
	}

	return out, nil
}

// resolveProduct picks the inline product context or loads the referenced
// stored product.
func (h *PricingHandler) resolveProduct(
	ctx context.Context,
	input *AnalyzeInput,
) (domain.ProductContext, error) {
	if input.Body.Product != nil {
		return *input.Body.Product, nil
	}

	if input.Body.ProductID == "" {
		return domain.ProductContext{}, huma.Error422UnprocessableEntity(
			"either product or product_id is required",
		)
	}

	if h.store == nil {
		return domain.ProductContext{}, huma.Error422UnprocessableEntity(
			"product_id requires a configured store",
		)
	}

	p, err := h.store.GetProduct(ctx, input.Body.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ProductContext{}, huma.Error404NotFound("product not found")
		}
		return domain.ProductContext{}, huma.Error500InternalServerError(
			"getting product: " + err.Error(),
		)
	}

	return p.Context(), nil
}

// RegisterPricingRoutes registers pricing endpoints with the Huma API.
func RegisterPricingRoutes(api huma.API, h *PricingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "analyze-pricing",
		Method:      http.MethodPost,
		Path:        "/api/v1/pricing/analyze",
		Summary:     "Run a pricing analysis",
		Description: "Prices a product against marketplace comparables and returns the recommendation with its defensible range.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusNotFound, http.StatusUnprocessableEntity},
	}, h.Analyze)
}
