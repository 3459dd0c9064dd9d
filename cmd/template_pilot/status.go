package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/template-pilot/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show learning and feedback statistics",
	Long:  "Summarizes the recorded selection history, template performance aggregates, and collected feedback.",
	RunE:  runStatus,
}

var statusConfig string

func init() {
	statusCmd.Flags().StringVarP(&statusConfig, "config", "c", "", "Path to config JSON file")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(statusConfig)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintLearningStats(p.store.Learning(cfg.MinSamplesForLearning))
	printer.PrintFeedbackStats(p.store.Feedback())

	for _, verr := range p.store.Verify() {
		fmt.Fprintf(os.Stderr, "Warning: store validation failed: %v\n", verr)
	}

	return nil
}
