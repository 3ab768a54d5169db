package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "product-pricing-service/pkg/types"
)

func floatPtr(v float64) *float64 { return &v }

func TestConditionMultiplier_Grades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		grade string
		want  float64
	}{
		{"new_in_package", 1.00},
		{"new", 0.85},
		{"like_new", 0.75},
		{"good", 0.65},
		{"acceptable", 0.45},
		{"poor", 0.25},
		{"mint condition???", 0.60},
		{"", 0.60},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			t.Parallel()
			got := ConditionMultiplier(domain.ConditionInfo{Grade: tt.grade})
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestConditionMultiplier_GradeAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want float64
	}{
		{"Brand New", 0.85},
		{"LIKE NEW", 0.75},
		{"Open Box", 0.75},
		{"factory sealed", 1.00},
		{"Pre-Owned", 0.65},
		{"for parts", 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got := ConditionMultiplier(domain.ConditionInfo{Grade: tt.raw})
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestConditionMultiplier_ScoreFineTune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		grade string
		score float64
		want  float64
	}{
		{"neutral score leaves grade", "good", 0.5, 0.65},
		{"high score bumps up", "good", 1.0, 0.75},
		{"low score pulls down", "good", 0.0, 0.55},
		{"perfect nip stays clamped at 1.0", "new_in_package", 1.0, 1.0},
		{"poor with zero score clamps at 0.1", "poor", 0.0, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ConditionMultiplier(domain.ConditionInfo{
				Grade: tt.grade,
				Score: floatPtr(tt.score),
			})
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestConditionMultiplier_ClampRange(t *testing.T) {
	t.Parallel()

	// Whatever the grade and score, the combined multiplier stays in [0.1, 1.0].
	grades := []string{"new_in_package", "new", "like_new", "good", "acceptable", "poor", "junk"}
	scores := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0}

	for _, g := range grades {
		for _, s := range scores {
			got := ConditionMultiplier(domain.ConditionInfo{Grade: g, Score: floatPtr(s)})
			assert.GreaterOrEqual(t, got, 0.1, "grade=%s score=%v", g, s)
			assert.LessOrEqual(t, got, 1.0, "grade=%s score=%v", g, s)
		}
	}
}

func TestCategoryBrandMultiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		brand    string
		want     float64
	}{
		{"known category unknown brand", "electronics", "generic", 0.7*0.70 + 0.3*0.60},
		{"unknown category unknown brand", "misc", "generic", 0.7*0.60 + 0.3*0.60},
		{"known category known brand", "electronics", "apple", 0.7*0.70 + 0.3*0.85},
		{"brand premium alone", "misc", "lego", 0.7*0.60 + 0.3*0.80},
		{"case insensitive", "Electronics", "APPLE", 0.7*0.70 + 0.3*0.85},
		{"empty inputs", "", "", 0.60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, CategoryBrandMultiplier(tt.category, tt.brand), 0.0001)
		})
	}
}

func TestPositionMultiplier(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.90, PositionMultiplier(domain.PositionAggressive), 0.0001)
	assert.InDelta(t, 0.95, PositionMultiplier(domain.PositionCompetitive), 0.0001)
	assert.InDelta(t, 1.15, PositionMultiplier(domain.PositionPremium), 0.0001)

	// Unrecognized positions resolve to the competitive default.
	assert.InDelta(t, 0.95, PositionMultiplier(domain.Position("whatever")), 0.0001)
}

func TestCompetitivePrice_Chain(t *testing.T) {
	t.Parallel()

	product := domain.ProductContext{
		Title:     "Nintendo Switch OLED",
		Category:  "electronics",
		Condition: domain.ConditionInfo{Grade: "good"},
	}

	// 100 * 0.65 * (0.7*0.70 + 0.3*0.60) * 0.95 = 41.3725 -> 41.37
	price, conditionMult := CompetitivePrice(100, product, domain.PositionCompetitive)

	assert.InDelta(t, 0.65, conditionMult, 0.0001)
	assert.InDelta(t, 41.37, price, 0.0001)
}

func TestCompetitivePrice_Deterministic(t *testing.T) {
	t.Parallel()

	product := domain.ProductContext{
		Category:  "toys",
		Brand:     "lego",
		Condition: domain.ConditionInfo{Grade: "like_new", Score: floatPtr(0.8)},
	}

	first, _ := CompetitivePrice(73.42, product, domain.PositionPremium)
	for range 10 {
		again, _ := CompetitivePrice(73.42, product, domain.PositionPremium)
		assert.Equal(t, first, again)
	}
}

func TestCompetitivePrice_ZeroBase(t *testing.T) {
	t.Parallel()

	price, conditionMult := CompetitivePrice(0, domain.ProductContext{}, domain.PositionCompetitive)
	assert.Zero(t, price)
	assert.InDelta(t, 0.60, conditionMult, 0.0001)
}

func TestNormalizeGrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.ConditionGrade
	}{
		{"good", domain.GradeGood},
		{"Like New", domain.GradeLikeNew},
		{"new in package", domain.GradeNewInPackage},
		{"NIB", domain.GradeNewInPackage},
		{"damaged", domain.GradePoor},
		{"", ""},
		{"sparkly", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeGrade(tt.raw))
		})
	}
}
