package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "product-pricing-service/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(products []domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tCATEGORY\tBRAND\tCONDITION\tSTATUS\n")
	for i := range products {
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			products[i].ID,
			truncate(products[i].Title, 40),
			products[i].Category,
			products[i].Brand,
			products[i].ConditionGrade,
			products[i].Status,
		)
	}
	return tw.finish()
}

func printProductDetail(p *domain.Product) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", p.ID)
	tw.writef("Title:\t%s\n", p.Title)
	tw.writef("Category:\t%s\n", p.Category)
	tw.writef("Brand:\t%s\n", p.Brand)
	tw.writef("Condition:\t%s\n", p.ConditionGrade)
	if p.ConditionScore != nil {
		tw.writef("Condition Score:\t%.2f\n", *p.ConditionScore)
	}
	tw.writef("Status:\t%s\n", p.Status)
	tw.writef("Created:\t%s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	tw.writef("Updated:\t%s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func printAnalysisDetail(a *domain.PricingAnalysis, degraded []string) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Recommended Price:\t$%.2f\n", a.RecommendedPrice)
	tw.writef("Price Range:\t$%.2f - $%.2f\n", a.PriceRange.Min, a.PriceRange.Max)
	tw.writef("Position:\t%s\n", a.CompetitivePosition)
	tw.writef("Velocity Optimized:\t$%.2f\n", a.VelocityOptimized)
	tw.writef("Margin Optimized:\t$%.2f\n", a.MarginOptimized)
	tw.writef("Condition Adjustment:\t%.2f\n", a.ConditionAdjustment)
	tw.writef("Trend:\t%s (confidence %.2f)\n", a.MarketTrends.Direction, a.MarketTrends.Confidence)
	tw.writef("Comparables:\t%d\n", a.ComparableAnalysis.TotalComparables)
	if len(degraded) > 0 {
		tw.writef("Degraded:\t%v\n", degraded)
	}
	return tw.finish()
}

func printComparablesTable(comparables []domain.Comparable) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("PLATFORM\tTITLE\tPRICE\tCONDITION\tSIMILARITY\n")
	for i := range comparables {
		tw.writef("%s\t%s\t$%.2f\t%s\t%.2f\n",
			comparables[i].Listing.Platform,
			truncate(comparables[i].Listing.Title, 40),
			comparables[i].Listing.Price,
			comparables[i].Listing.Condition,
			comparables[i].Similarity,
		)
	}
	return tw.finish()
}

func printAnalysesTable(records []domain.AnalysisRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tSTRATEGY\tPOSITION\tPRICE\tRANGE\tCREATED\n")
	for i := range records {
		r := &records[i]
		tw.writef("%s\t%s\t%s\t$%.2f\t$%.2f-$%.2f\t%s\n",
			r.ID,
			r.Strategy,
			r.Position,
			r.Analysis.RecommendedPrice,
			r.Analysis.PriceRange.Min,
			r.Analysis.PriceRange.Max,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
