package pricing

import (
	"math"

	domain "product-pricing-service/pkg/types"
)

const (
	velocityFactor = 0.85
	marginFactor   = 1.10

	// A balanced strategy only follows the trend signal when the
	// collaborator is confident about the direction.
	trendConfidenceFloor = 0.7
)

// Bounds derives the quick-sale and higher-margin bounds from the
// competitive price, rounded to cents.
func Bounds(competitivePrice float64) (velocity, margin float64) {
	return roundCents(competitivePrice * velocityFactor),
		roundCents(competitivePrice * marginFactor)
}

// SelectPrice picks the recommended price for the given strategy. Velocity
// and margin strategies always return their bound; balanced follows the
// trend signal when its confidence clears the floor, otherwise it stays at
// the competitive price.
func SelectPrice(
	strategy domain.Strategy,
	competitive, velocity, margin float64,
	trends domain.MarketTrends,
) float64 {
	switch strategy {
	case domain.StrategyVelocity:
		return velocity
	case domain.StrategyMargin:
		return margin
	default:
		if trends.Confidence > trendConfidenceFloor {
			switch trends.Direction {
			case domain.TrendUp:
				return margin
			case domain.TrendDown:
				return velocity
			}
		}
		return competitive
	}
}

// PositionLabel classifies the recommendation against the unadjusted base
// price. The thresholds are fixed business rules. A zero base price (empty
// comparable set) reads as market rate.
func PositionLabel(recommended, basePrice float64) string {
	if basePrice <= 0 {
		return "Market Rate"
	}

	switch ratio := recommended / basePrice; {
	case ratio < 0.85:
		return "Aggressive"
	case ratio < 0.95:
		return "Competitive"
	case ratio < 1.05:
		return "Market Rate"
	case ratio < 1.15:
		return "Premium"
	default:
		return "Luxury"
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
