// Package main is the entry point for the pricer CLI client.
package main

import (
	"product-pricing-service/cmd/pricer/cmd"
)

func main() {
	cmd.Execute()
}
