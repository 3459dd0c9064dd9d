// Package main provides the template_pilot CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "template_pilot",
	Short: "Template selection and adaptive ranking for generated documents",
	Long:  "template_pilot scans previously generated documents, ranks them against a structured job record, and learns from recorded outcomes and user feedback to improve future selections.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
