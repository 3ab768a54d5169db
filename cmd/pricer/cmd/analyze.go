package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "product-pricing-service/internal/api/client"
	"product-pricing-service/internal/engine"
	"product-pricing-service/internal/marketdata"
	"product-pricing-service/internal/trends"
	domain "product-pricing-service/pkg/types"
)

func analyzeCmd() *cobra.Command {
	var (
		productID      string
		title          string
		category       string
		brand          string
		condition      string
		conditionScore float64
		strategy       string
		position       string
		listingsFile   string
		offline        bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a pricing analysis",
		Long: "Run a pricing analysis for a stored product or an ad-hoc product\n" +
			"context. Comparable listings are fetched live from the configured\n" +
			"marketplace sources unless a listings JSON file is supplied.",
		Example: `  # Price a stored product against live sources
  pricer analyze --product-id 3f6a1c9e

  # Price an ad-hoc product with a margin strategy
  pricer analyze --title "Nintendo Switch OLED Model White" \
    --category electronics --condition good --strategy margin

  # Price against a pre-collected listings file, without a server
  pricer analyze --title "Nintendo Switch OLED Model White" \
    --listings comps.json --offline`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := &apiclient.AnalyzeRequest{
				ProductID: productID,
				Options: domain.PricingOptions{
					Strategy: domain.Strategy(strategy),
					Position: domain.Position(position),
				},
			}

			if title != "" {
				req.Product = &domain.ProductContext{
					Title:    title,
					Category: category,
					Brand:    brand,
					Condition: domain.ConditionInfo{
						Grade: condition,
					},
				}
				if cmd.Flags().Changed("condition-score") {
					req.Product.Condition.Score = &conditionScore
				}
			}

			if listingsFile != "" {
				sets, err := readListingSets(listingsFile)
				if err != nil {
					return err
				}
				req.Listings = sets
			}

			if offline {
				return analyzeOffline(req)
			}

			c := newClient()
			resp, err := c.Analyze(context.Background(), req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if err := printAnalysisDetail(&resp.Analysis, resp.Degraded); err != nil {
				return err
			}
			if len(resp.Comparables) > 0 {
				fmt.Println()
				return printComparablesTable(resp.Comparables)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&productID, "product-id", "", "stored product ID")
	cmd.Flags().StringVar(&title, "title", "", "ad-hoc product title")
	cmd.Flags().StringVar(&category, "category", "", "ad-hoc product category")
	cmd.Flags().StringVar(&brand, "brand", "", "ad-hoc product brand")
	cmd.Flags().StringVar(&condition, "condition", "", "condition grade")
	cmd.Flags().Float64Var(&conditionScore, "condition-score", 0, "condition fine-tune score (0-1)")
	cmd.Flags().StringVar(&strategy, "strategy", "", "pricing strategy (velocity, margin, balanced)")
	cmd.Flags().StringVar(&position, "position", "", "competitive position (aggressive, competitive, premium)")
	cmd.Flags().StringVar(&listingsFile, "listings", "", "JSON file of pre-collected listing sets")
	cmd.Flags().BoolVar(&offline, "offline", false, "run the analysis locally instead of on the server (requires --listings)")

	return cmd
}

// readListingSets loads pre-collected raw listings from a JSON file shaped as
// [{"platform": "ebay", "records": [...]}].
func readListingSets(path string) ([]apiclient.ListingSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading listings file: %w", err)
	}

	var sets []apiclient.ListingSet
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parsing listings file: %w", err)
	}
	return sets, nil
}

// analyzeOffline runs the pricing engine in-process against the supplied
// listings, with the fixed stable trend signal instead of a live provider.
func analyzeOffline(req *apiclient.AnalyzeRequest) error {
	if req.Product == nil || req.Product.Title == "" {
		return fmt.Errorf("offline analysis requires --title")
	}
	if len(req.Listings) == 0 {
		return fmt.Errorf("offline analysis requires --listings")
	}

	var listings []domain.Listing
	for _, set := range req.Listings {
		listings = append(listings,
			marketdata.NormalizeAll(domain.Platform(set.Platform), set.Records)...)
	}

	eng := engine.NewEngine(nil, &trends.Static{Trends: trends.Default()})
	res, err := eng.Analyze(context.Background(), *req.Product, listings, req.Options)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return outputJSON(map[string]any{
			"analysis":    res.Analysis,
			"comparables": res.Comparables,
			"degraded":    res.Degraded,
		})
	}

	if err := printAnalysisDetail(&res.Analysis, res.Degraded); err != nil {
		return err
	}
	if len(res.Comparables) > 0 {
		fmt.Println()
		return printComparablesTable(res.Comparables)
	}
	return nil
}
