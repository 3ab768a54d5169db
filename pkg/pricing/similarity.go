// Package pricing implements the comparable-listing pricing pipeline:
// similarity scoring, price aggregation, the multiplicative adjustment
// chain, and strategy-based price selection. Everything in this package is
// pure; the orchestrator in internal/engine owns the external collaborators.
package pricing

import (
	"sort"
	"strings"

	domain "product-pricing-service/pkg/types"
)

// Similarity computes the token-set Jaccard index of two titles, in [0,1].
// Titles are lowercased and split on whitespace; duplicate tokens collapse.
// Two titles that both tokenize to the empty set score 0, not NaN.
func Similarity(a, b string) float64 {
	ta := tokenize(a)
	tb := tokenize(b)

	if len(ta) == 0 && len(tb) == 0 {
		return 0
	}

	shared := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared++
		}
	}

	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}

	return float64(shared) / float64(union)
}

// RankComparables scores every listing against the target title and returns
// them ordered by descending similarity. Ties keep their input order.
func RankComparables(targetTitle string, listings []domain.Listing) []domain.Comparable {
	comps := make([]domain.Comparable, 0, len(listings))
	for i := range listings {
		comps = append(comps, domain.Comparable{
			Listing:    listings[i],
			Similarity: Similarity(targetTitle, listings[i].Title),
		})
	}

	sort.SliceStable(comps, func(i, j int) bool {
		return comps[i].Similarity > comps[j].Similarity
	})

	return comps
}

func tokenize(s string) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tokens[tok] = struct{}{}
	}
	return tokens
}
