package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/template-pilot/internal/observability"
	"github.com/jonathan/template-pilot/internal/types"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the best reusable template for a job",
	Long:  "Scans the output root for previously generated documents, ranks them against the given job record, records the selection, and optionally collects feedback.",
	RunE:  runSelect,
}

var (
	selectJob        string
	selectConfig     string
	selectOutputRoot string
	selectOut        string
	selectInteract   bool
	selectVerbose    bool
)

func init() {
	selectCmd.Flags().StringVarP(&selectJob, "job", "j", "", "Path to structured job record JSON (required)")
	selectCmd.Flags().StringVarP(&selectConfig, "config", "c", "", "Path to config JSON file")
	selectCmd.Flags().StringVar(&selectOutputRoot, "output-root", "", "Override the scanned output root directory")
	selectCmd.Flags().StringVarP(&selectOut, "out", "o", "", "Write the selection result JSON to this file")
	selectCmd.Flags().BoolVarP(&selectInteract, "interactive", "i", false, "Prompt for feedback after selecting")
	selectCmd.Flags().BoolVarP(&selectVerbose, "verbose", "v", false, "Print the candidate analysis table")

	if err := selectCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(selectCmd)
}

func runSelect(_ *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(selectConfig)
	if err != nil {
		return err
	}
	if selectOutputRoot != "" {
		cfg.OutputRoot = selectOutputRoot
	}
	if selectInteract {
		cfg.Interactive = true
	}
	if selectVerbose {
		cfg.Verbose = true
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	job, err := loadJobRecord(selectJob)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintJobSummary(job)
	}

	scanned := p.scanner.Scan()
	candidates := make([]*types.TemplateCandidate, len(scanned))
	for i := range scanned {
		candidates[i] = &scanned[i]
	}

	scored := p.orchestrator.Rank(job, candidates)
	if cfg.Verbose {
		printer.PrintCandidateAnalysis(scored)
	}

	result := p.orchestrator.SelectBest(job, candidates)
	printer.PrintSelection(result)
	if result == nil {
		// No reusable template is a valid outcome, not a failure.
		return nil
	}

	if err := p.store.RecordSelection(job, result.FilePath, true, result.Score, nil, ""); err != nil {
		return fmt.Errorf("failed to record selection: %w", err)
	}

	if cfg.Interactive {
		if err := p.collector.Collect(job, result.FilePath, result.FilePath); err != nil {
			p.logger.Warn("feedback collection failed", zap.Error(err))
		}
	}

	if selectOut != "" {
		if err := writeResultJSON(selectOut, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Selection written to %s\n", selectOut)
	}

	return nil
}

func writeResultJSON(path string, result *types.RankedResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selection result: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write selection result to %s: %w", path, err)
	}
	return nil
}
