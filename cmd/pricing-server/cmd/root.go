// Package cmd implements the CLI commands for pricing-server.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pricing-server",
	Short: "Price secondhand inventory against live marketplace comparables",
	Long:  "An API-first service that prices product inventory against comparable marketplace listings, blending similarity-ranked comparables, condition and trend adjustments, and a pricing-strategy selector into a recommendation with a defensible range.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
