package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/template-pilot/internal/types"
)

var recordOutcomeCmd = &cobra.Command{
	Use:   "record-outcome",
	Short: "Record the real-world outcome of a past selection",
	Long:  "Appends a selection outcome (success, modified, or rejected) with an optional 1-5 rating, so future rankings learn from how the template actually performed.",
}

var (
	recordOutcomeJobID    string
	recordOutcomeTemplate string
	recordOutcomeOutcome  string
	recordOutcomeRating   float64
	recordOutcomeConfig   string
)

func init() {
	recordOutcomeCmd.RunE = runRecordOutcome
	recordOutcomeCmd.Flags().StringVar(&recordOutcomeJobID, "job-id", "", "Job ID of the original selection (required)")
	recordOutcomeCmd.Flags().StringVarP(&recordOutcomeTemplate, "template", "t", "", "Path of the selected template (required)")
	recordOutcomeCmd.Flags().StringVar(&recordOutcomeOutcome, "outcome", "", "Outcome: success, modified, or rejected (required)")
	recordOutcomeCmd.Flags().Float64VarP(&recordOutcomeRating, "rating", "r", 0, "Optional user rating, 1-5")
	recordOutcomeCmd.Flags().StringVarP(&recordOutcomeConfig, "config", "c", "", "Path to config JSON file")

	for _, flag := range []string{"job-id", "template", "outcome"} {
		if err := recordOutcomeCmd.MarkFlagRequired(flag); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", flag, err))
		}
	}

	rootCmd.AddCommand(recordOutcomeCmd)
}

func runRecordOutcome(_ *cobra.Command, _ []string) error {
	if !types.ValidOutcome(recordOutcomeOutcome) {
		return fmt.Errorf("invalid outcome %q: must be one of success, modified, rejected", recordOutcomeOutcome)
	}

	cfg, err := loadRuntimeConfig(recordOutcomeConfig)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	job := &types.JobRecord{JobID: recordOutcomeJobID}
	score := 0.0

	// Recover the job title and original score from the selection log so the
	// per-role aggregates update against the right role.
	for _, entry := range p.store.History() {
		if entry.JobID == recordOutcomeJobID {
			job.Title = entry.JobTitle
			if entry.SelectedTemplate == recordOutcomeTemplate {
				score = entry.SelectionScore
			}
		}
	}

	var rating *float64
	if recordOutcomeCmd.Flags().Changed("rating") {
		rating = &recordOutcomeRating
	}

	if err := p.store.RecordSelection(job, recordOutcomeTemplate, false, score, rating, recordOutcomeOutcome); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Recorded %s outcome for %s\n", recordOutcomeOutcome, recordOutcomeTemplate)
	return nil
}
