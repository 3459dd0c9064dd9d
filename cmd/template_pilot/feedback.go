package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/template-pilot/internal/types"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Collect feedback for a past selection",
	Long:  "Runs the interactive rating prompts for a previously selected template, subject to the same per-job and time-window throttling as post-select collection.",
	RunE:  runFeedback,
}

var (
	feedbackJobID    string
	feedbackTemplate string
	feedbackConfig   string
)

func init() {
	feedbackCmd.Flags().StringVar(&feedbackJobID, "job-id", "", "Job ID of the selection to rate (required)")
	feedbackCmd.Flags().StringVarP(&feedbackTemplate, "template", "t", "", "Template path (defaults to the job's last selected template)")
	feedbackCmd.Flags().StringVarP(&feedbackConfig, "config", "c", "", "Path to config JSON file")

	if err := feedbackCmd.MarkFlagRequired("job-id"); err != nil {
		panic(fmt.Sprintf("failed to mark job-id flag as required: %v", err))
	}

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(_ *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig(feedbackConfig)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.logger.Sync() }()

	job := &types.JobRecord{JobID: feedbackJobID}
	lastSelected := ""
	for _, entry := range p.store.History() {
		if entry.JobID == feedbackJobID {
			job.Title = entry.JobTitle
			lastSelected = entry.SelectedTemplate
		}
	}

	template := feedbackTemplate
	if template == "" {
		template = lastSelected
	}
	if template == "" {
		return fmt.Errorf("no recorded selection for job %q; pass --template explicitly", feedbackJobID)
	}

	return p.collector.Collect(job, lastSelected, template)
}
