package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/template-pilot/internal/feedback"
	"github.com/jonathan/template-pilot/internal/fitscore"
	"github.com/jonathan/template-pilot/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a comprehensive JSON report of template performance",
	Long:  "Combines learning statistics, feedback statistics, per-template aggregates with logged fit-score insights, and the top-rated templates into a single JSON report.",
	RunE:  runReport,
}

var (
	reportConfig string
	reportOut    string
)

func init() {
	reportCmd.Flags().StringVarP(&reportConfig, "config", "c", "", "Path to config JSON file")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write the report to this file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

// templateReport pairs a template's learned aggregates with the insights
// mined from its original generation logs.
type templateReport struct {
	*types.TemplatePerformance
	Insights fitscore.PerformanceInsights `json:"insights"`
}

type performanceReport struct {
	GeneratedAt string                       `json:"generated_at"`
	Learning    feedback.LearningStats       `json:"learning"`
	Feedback    feedback.FeedbackStats       `json:"feedback"`
	Templates   []templateReport             `json:"templates"`
	TopRated    []*types.TemplatePerformance `json:"top_rated"`
}

func runReport(_ *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(reportConfig)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	performances := p.store.Performances()
	templates := make([]templateReport, 0, len(performances))
	for _, perf := range performances {
		templates = append(templates, templateReport{
			TemplatePerformance: perf,
			Insights:            p.fit.Insights(perf.TemplatePath),
		})
	}

	report := performanceReport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Learning:    p.store.Learning(cfg.MinSamplesForLearning),
		Feedback:    p.store.Feedback(),
		Templates:   templates,
		TopRated:    p.store.TopRated(5),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if reportOut == "" {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	dir := filepath.Dir(reportOut)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(reportOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", reportOut, err)
	}

	fmt.Fprintf(os.Stdout, "Report written to %s\n", reportOut)
	return nil
}
