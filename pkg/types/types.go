// Package domain defines the core business types for the product pricing
// service.
package domain

import (
	"strings"
	"time"
)

// Platform identifies the marketplace a listing was observed on. The set is
// open-ended; unknown platform strings pass through untouched.
type Platform string

// Known platform constants.
const (
	PlatformEbay     Platform = "ebay"
	PlatformMercari  Platform = "mercari"
	PlatformFacebook Platform = "facebook"
	PlatformPoshmark Platform = "poshmark"
)

// ConditionGrade is a coarse condition label for the product being priced.
type ConditionGrade string

// Condition grade constants.
const (
	GradeNewInPackage ConditionGrade = "new_in_package"
	GradeNew          ConditionGrade = "new"
	GradeLikeNew      ConditionGrade = "like_new"
	GradeGood         ConditionGrade = "good"
	GradeAcceptable   ConditionGrade = "acceptable"
	GradePoor         ConditionGrade = "poor"
)

// Listing is a single comparable product observation from a marketplace.
// Prices at or below zero mark the listing as unusable for statistics;
// such listings are carried through but excluded from every computation.
type Listing struct {
	Platform     Platform `json:"platform"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Condition    string   `json:"condition,omitempty"`
	URL          string   `json:"url,omitempty"`
	Seller       string   `json:"seller,omitempty"`
	ShippingCost *float64 `json:"shipping_cost,omitempty"`
	Location     string   `json:"location,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`

	// IsSold is informational only; sold listings are not weighted
	// differently from active asks.
	IsSold bool `json:"is_sold,omitempty"`
}

// Comparable pairs a listing with its similarity to the target product title.
type Comparable struct {
	Listing    Listing `json:"listing"`
	Similarity float64 `json:"similarity"`
}

// PriceBucket is one fixed band of the price distribution.
type PriceBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// PriceStatistics summarizes the positive prices of a pooled listing set.
// When Count is zero every numeric field is zero and InsufficientData is set.
type PriceStatistics struct {
	Median           float64       `json:"median"`
	Mean             float64       `json:"mean"`
	Min              float64       `json:"min"`
	Max              float64       `json:"max"`
	Count            int           `json:"count"`
	Distribution     []PriceBucket `json:"distribution"`
	InsufficientData bool          `json:"insufficient_data"`
}

// ConditionInfo describes the condition of the product being priced. Score,
// when present, fine-tunes the grade multiplier within [0,1].
type ConditionInfo struct {
	Grade string   `json:"grade"`
	Score *float64 `json:"score,omitempty"`
}

// ProductContext is the immutable description of the item being priced.
type ProductContext struct {
	Title     string        `json:"title"`
	Category  string        `json:"category" required:"false"`
	Brand     string        `json:"brand"    required:"false"`
	Condition ConditionInfo `json:"condition"`
}

// Strategy selects the final recommended price from the computed bounds.
type Strategy string

// Strategy constants.
const (
	StrategyVelocity Strategy = "velocity"
	StrategyMargin   Strategy = "margin"
	StrategyBalanced Strategy = "balanced"
)

// ParseStrategy maps a strategy string to a Strategy, falling back to
// balanced for anything unrecognized.
func ParseStrategy(s string) Strategy {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyVelocity:
		return StrategyVelocity
	case StrategyMargin:
		return StrategyMargin
	default:
		return StrategyBalanced
	}
}

// Position is the requested competitive stance.
type Position string

// Position constants.
const (
	PositionAggressive  Position = "aggressive"
	PositionCompetitive Position = "competitive"
	PositionPremium     Position = "premium"
)

// ParsePosition maps a position string to a Position, falling back to
// competitive for anything unrecognized.
func ParsePosition(s string) Position {
	switch Position(strings.ToLower(strings.TrimSpace(s))) {
	case PositionAggressive:
		return PositionAggressive
	case PositionPremium:
		return PositionPremium
	default:
		return PositionCompetitive
	}
}

// PricingOptions selects the strategy and stance for one pricing request.
type PricingOptions struct {
	Strategy Strategy `json:"strategy"             required:"false"`
	Position Position `json:"competitive_position" required:"false"`
}

// TrendDirection is the market-trend signal direction.
type TrendDirection string

// Trend direction constants.
const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// MarketTrends is the external trend signal consumed by the strategy
// selector. When the trend collaborator fails, the stable/0.5 default is
// used instead.
type MarketTrends struct {
	Direction  TrendDirection `json:"direction"`
	Confidence float64        `json:"confidence"`
	Factors    []string       `json:"factors"`
}

// PriceRange bounds the defensible range around the recommendation.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ComparableAnalysis carries the aggregator statistics into the final result.
type ComparableAnalysis struct {
	MedianPrice       float64       `json:"median_price"`
	AveragePrice      float64       `json:"average_price"`
	TotalComparables  int           `json:"total_comparables"`
	PriceDistribution []PriceBucket `json:"price_distribution"`
}

// PricingAnalysis is the fully derived pricing result, recomputed per
// request with no independent lifecycle.
type PricingAnalysis struct {
	RecommendedPrice    float64            `json:"recommended_price"`
	PriceRange          PriceRange         `json:"price_range"`
	CompetitivePosition string             `json:"competitive_position"`
	VelocityOptimized   float64            `json:"velocity_optimized"`
	MarginOptimized     float64            `json:"margin_optimized"`
	ConditionAdjustment float64            `json:"condition_adjustment"`
	MarketTrends        MarketTrends       `json:"market_trends"`
	ComparableAnalysis  ComparableAnalysis `json:"comparable_analysis"`
}

// ProductStatus tracks inventory lifecycle for stored products.
type ProductStatus string

// Product status constants.
const (
	ProductDraft    ProductStatus = "draft"
	ProductActive   ProductStatus = "active"
	ProductListed   ProductStatus = "listed"
	ProductSold     ProductStatus = "sold"
	ProductArchived ProductStatus = "archived"
)

// Product is an inventory item owned by the application layer.
type Product struct {
	ID             string        `json:"id"                        db:"id"`
	Title          string        `json:"title"                     db:"title"`
	Category       string        `json:"category"                  db:"category"`
	Brand          string        `json:"brand,omitempty"           db:"brand"`
	ConditionGrade string        `json:"condition_grade"           db:"condition_grade"`
	ConditionScore *float64      `json:"condition_score,omitempty" db:"condition_score"`
	Status         ProductStatus `json:"status"                    db:"status"`
	CreatedAt      time.Time     `json:"created_at"                db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"                db:"updated_at"`
}

// Context derives the pricing input from a stored product.
func (p *Product) Context() ProductContext {
	return ProductContext{
		Title:    p.Title,
		Category: p.Category,
		Brand:    p.Brand,
		Condition: ConditionInfo{
			Grade: p.ConditionGrade,
			Score: p.ConditionScore,
		},
	}
}

// AnalysisRecord is a persisted pricing analysis for a product.
type AnalysisRecord struct {
	ID        string          `json:"id"         db:"id"`
	ProductID string          `json:"product_id" db:"product_id"`
	Strategy  Strategy        `json:"strategy"   db:"strategy"`
	Position  Position        `json:"position"   db:"position"`
	Analysis  PricingAnalysis `json:"analysis"   db:"analysis"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
