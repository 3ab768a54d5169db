package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "product-pricing-service/internal/api/client"
	domain "product-pricing-service/pkg/types"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Manage inventory products",
		Long: "Create, query, update, and delete the inventory products that\n" +
			"pricing analyses run against.",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsCreateCmd(),
		productsUpdateCmd(),
		productsDeleteCmd(),
		productsAnalysesCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var (
		status   string
		category string
		brand    string
		search   string
		limit    int
		offset   int
		orderBy  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters",
		Example: `  # List all products
  pricer products list

  # Filter by status and category
  pricer products list --status active --category electronics

  # Search titles with pagination
  pricer products list --search "switch oled" --limit 20 --offset 40`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListProducts(context.Background(), &apiclient.ListProductsParams{
				Status:   status,
				Category: category,
				Brand:    brand,
				Search:   search,
				Limit:    limit,
				Offset:   offset,
				OrderBy:  orderBy,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Products) == 0 {
				fmt.Println("No products found.")
				return nil
			}

			fmt.Printf("Showing %d of %d products\n\n", len(resp.Products), resp.Total)
			return printProductsTable(resp.Products)
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "lifecycle status filter")
	cmd.Flags().StringVar(&category, "category", "", "category filter")
	cmd.Flags().StringVar(&brand, "brand", "", "brand filter")
	cmd.Flags().StringVar(&search, "search", "", "title search")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&orderBy, "order-by", "", "sort order (created_at, updated_at, title)")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show product details",
		Example: `  pricer products get 3f6a1c9e-8b2d-4e5f-9a7c-1d2e3f4a5b6c`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			p, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			return printProductDetail(p)
		},
	}
}

func productsCreateCmd() *cobra.Command {
	var (
		title     string
		category  string
		brand     string
		condition string
		status    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Example: `  pricer products create --title "Nintendo Switch OLED Model White" \
    --category electronics --brand nintendo --condition good`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			p, err := c.CreateProduct(context.Background(), &domain.Product{
				Title:          title,
				Category:       category,
				Brand:          brand,
				ConditionGrade: condition,
				Status:         domain.ProductStatus(status),
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(p)
			}

			fmt.Println("Product created:")
			return printProductDetail(p)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "product title (required)")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().StringVar(&brand, "brand", "", "product brand")
	cmd.Flags().StringVar(&condition, "condition", "", "condition grade")
	cmd.Flags().StringVar(&status, "status", "", "lifecycle status")
	cobra.CheckErr(cmd.MarkFlagRequired("title"))

	return cmd
}

func productsUpdateCmd() *cobra.Command {
	var (
		title     string
		category  string
		brand     string
		condition string
		status    string
	)

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Update a product",
		Example: `  pricer products update 3f6a1c9e --status listed`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx := context.Background()

			// Start from the current product so unset flags keep their values.
			p, err := c.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				p.Title = title
			}
			if cmd.Flags().Changed("category") {
				p.Category = category
			}
			if cmd.Flags().Changed("brand") {
				p.Brand = brand
			}
			if cmd.Flags().Changed("condition") {
				p.ConditionGrade = condition
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProductStatus(status)
			}

			updated, err := c.UpdateProduct(ctx, p)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(updated)
			}

			fmt.Println("Product updated:")
			return printProductDetail(updated)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "product title")
	cmd.Flags().StringVar(&category, "category", "", "product category")
	cmd.Flags().StringVar(&brand, "brand", "", "product brand")
	cmd.Flags().StringVar(&condition, "condition", "", "condition grade")
	cmd.Flags().StringVar(&status, "status", "", "lifecycle status")

	return cmd
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a product",
		Example: `  pricer products delete 3f6a1c9e`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteProduct(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Product deleted.")
			return nil
		},
	}
}

func productsAnalysesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "analyses <id>",
		Short:   "Show a product's analysis history",
		Example: `  pricer products analyses 3f6a1c9e --limit 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			records, err := c.ListProductAnalyses(context.Background(), args[0], limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(records)
			}

			if len(records) == 0 {
				fmt.Println("No analyses found.")
				return nil
			}

			return printAnalysesTable(records)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of analyses")

	return cmd
}
