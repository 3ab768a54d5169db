package client

import (
	"context"

	"product-pricing-service/internal/marketdata"
	domain "product-pricing-service/pkg/types"
)

// ListingSet is one platform's worth of raw listing records sent inline
// with an analyze request.
type ListingSet struct {
	Platform string                  `json:"platform"`
	Records  []marketdata.RawListing `json:"records"`
}

// AnalyzeRequest is the body for the analyze endpoint.
type AnalyzeRequest struct {
	ProductID string                 `json:"product_id,omitempty"`
	Product   *domain.ProductContext `json:"product,omitempty"`
	Options   domain.PricingOptions  `json:"options"`
	Listings  []ListingSet           `json:"listings,omitempty"`
}

// AnalyzeResponse is the response from the analyze endpoint.
type AnalyzeResponse struct {
	Analysis    domain.PricingAnalysis `json:"analysis"`
	Comparables []domain.Comparable    `json:"comparables"`
	Degraded    []string               `json:"degraded,omitempty"`
	AnalysisID  string                 `json:"analysis_id,omitempty"`
}

// Analyze runs a pricing analysis on the server.
func (c *Client) Analyze(ctx context.Context, req *AnalyzeRequest) (*AnalyzeResponse, error) {
	var resp AnalyzeResponse
	if err := c.post(ctx, "/api/v1/pricing/analyze", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
