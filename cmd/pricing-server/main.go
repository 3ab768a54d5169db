// Package main is the entry point for the pricing-server.
package main

import (
	"os"

	"product-pricing-service/cmd/pricing-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
