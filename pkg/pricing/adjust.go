package pricing

import (
	"strings"

	domain "product-pricing-service/pkg/types"
)

// The adjustment chain is strictly multiplicative and order dependent:
// condition, then category+brand, then competitive positioning. Reordering
// the steps changes results and is not supported.

const (
	defaultConditionMultiplier = 0.60
	defaultCategoryMultiplier  = 0.60
	defaultBrandMultiplier     = 0.60

	// Category dominates the blend; brand is a secondary premium signal.
	categoryBlendWeight = 0.7
	brandBlendWeight    = 0.3

	conditionMultiplierMin = 0.1
	conditionMultiplierMax = 1.0
)

// gradeMultipliers maps coarse condition grades to price multipliers.
var gradeMultipliers = map[domain.ConditionGrade]float64{
	domain.GradeNewInPackage: 1.00,
	domain.GradeNew:          0.85,
	domain.GradeLikeNew:      0.75,
	domain.GradeGood:         0.65,
	domain.GradeAcceptable:   0.45,
	domain.GradePoor:         0.25,
}

// gradeAliases maps free-text condition variants seen in scraped data and
// LLM output to normalized grades.
var gradeAliases = map[string]domain.ConditionGrade{
	"new in package":  domain.GradeNewInPackage,
	"new in box":      domain.GradeNewInPackage,
	"nip":             domain.GradeNewInPackage,
	"nib":             domain.GradeNewInPackage,
	"factory sealed":  domain.GradeNewInPackage,
	"brand new":       domain.GradeNew,
	"new without box": domain.GradeNew,
	"like new":        domain.GradeLikeNew,
	"open box":        domain.GradeLikeNew,
	"excellent":       domain.GradeLikeNew,
	"very good":       domain.GradeGood,
	"used":            domain.GradeGood,
	"pre-owned":       domain.GradeGood,
	"fair":            domain.GradeAcceptable,
	"for parts":       domain.GradePoor,
	"not working":     domain.GradePoor,
	"damaged":         domain.GradePoor,
}

// NormalizeGrade maps a raw condition string to a ConditionGrade. Unknown
// input returns the empty grade, which downstream resolves to the default
// multiplier.
func NormalizeGrade(raw string) domain.ConditionGrade {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	g := domain.ConditionGrade(strings.ReplaceAll(s, " ", "_"))
	if _, ok := gradeMultipliers[g]; ok {
		return g
	}

	if g, ok := gradeAliases[s]; ok {
		return g
	}

	return ""
}

// ConditionMultiplier resolves the condition adjustment for a grade plus an
// optional numeric score in [0,1]. The grade gives the coarse multiplier;
// the score shifts it by (score-0.5)*0.2 for intra-grade nuance. The
// combined multiplier is clamped to [0.1, 1.0] so a bad score can never
// zero out or invert the price direction.
func ConditionMultiplier(cond domain.ConditionInfo) float64 {
	mult := defaultConditionMultiplier
	if m, ok := gradeMultipliers[NormalizeGrade(cond.Grade)]; ok {
		mult = m
	}

	if cond.Score != nil {
		mult += (*cond.Score - 0.5) * 0.2
	}

	return clamp(mult, conditionMultiplierMin, conditionMultiplierMax)
}

// categoryMultipliers captures depreciation resistance per category.
var categoryMultipliers = map[string]float64{
	"electronics":  0.70,
	"collectibles": 0.75,
	"tools":        0.65,
	"jewelry":      0.65,
	"home":         0.60,
	"toys":         0.55,
	"sporting":     0.55,
	"shoes":        0.50,
	"clothing":     0.45,
	"books":        0.35,
}

// brandMultipliers captures resale premium for recognized brands.
var brandMultipliers = map[string]float64{
	"apple":     0.85,
	"lego":      0.80,
	"nike":      0.75,
	"sony":      0.75,
	"dyson":     0.75,
	"patagonia": 0.75,
	"samsung":   0.70,
	"levi's":    0.65,
	"adidas":    0.65,
}

// CategoryBrandMultiplier blends the category and brand multipliers
// (0.7 category + 0.3 brand). Unknown categories and brands both resolve
// to 0.60.
func CategoryBrandMultiplier(category, brand string) float64 {
	cat := defaultCategoryMultiplier
	if m, ok := categoryMultipliers[strings.ToLower(strings.TrimSpace(category))]; ok {
		cat = m
	}

	br := defaultBrandMultiplier
	if m, ok := brandMultipliers[strings.ToLower(strings.TrimSpace(brand))]; ok {
		br = m
	}

	return categoryBlendWeight*cat + brandBlendWeight*br
}

// PositionMultiplier returns the fixed factor for the requested stance.
func PositionMultiplier(pos domain.Position) float64 {
	switch pos {
	case domain.PositionAggressive:
		return 0.90
	case domain.PositionPremium:
		return 1.15
	default:
		return 0.95
	}
}

// CompetitivePrice runs the full adjustment chain against the base price
// and returns the competitive price along with the condition multiplier
// that was applied. The competitive price is rounded to cents; the strategy
// bounds derive from the rounded value.
func CompetitivePrice(
	basePrice float64,
	product domain.ProductContext,
	pos domain.Position,
) (price, conditionMult float64) {
	conditionMult = ConditionMultiplier(product.Condition)

	price = basePrice
	price *= conditionMult
	price *= CategoryBrandMultiplier(product.Category, product.Brand)
	price *= PositionMultiplier(pos)

	return roundCents(price), conditionMult
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
