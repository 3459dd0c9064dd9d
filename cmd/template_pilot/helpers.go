package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/template-pilot/internal/config"
	"github.com/jonathan/template-pilot/internal/features"
	"github.com/jonathan/template-pilot/internal/feedback"
	"github.com/jonathan/template-pilot/internal/fitscore"
	"github.com/jonathan/template-pilot/internal/learning"
	"github.com/jonathan/template-pilot/internal/logging"
	"github.com/jonathan/template-pilot/internal/ranking"
	"github.com/jonathan/template-pilot/internal/scanning"
	"github.com/jonathan/template-pilot/internal/scoring"
	"github.com/jonathan/template-pilot/internal/similarity"
	"github.com/jonathan/template-pilot/internal/types"
)

// pipeline bundles the wired components shared by the subcommands.
type pipeline struct {
	cfg          config.Config
	logger       *zap.Logger
	store        *feedback.Store
	scanner      *scanning.Scanner
	extractor    *features.Extractor
	fit          *fitscore.Integrator
	orchestrator *ranking.Orchestrator
	collector    *feedback.Collector
}

// loadRuntimeConfig loads the optional config file and merges it with
// defaults. An empty path means defaults only.
func loadRuntimeConfig(path string) (config.Config, error) {
	defaults := config.DefaultConfig()
	if path == "" {
		return defaults, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}

	merged := cfg.MergeWithDefaults(defaults)
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// buildPipeline wires every component from a resolved configuration.
func buildPipeline(cfg config.Config) (*pipeline, error) {
	logger, err := logging.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	store, err := feedback.NewStore(feedback.StoreOptions{
		DataDir:                   cfg.DataDir,
		MinSessionsBeforeThrottle: cfg.MinSessionsBeforeThrottle,
		DaysBetweenPrompts:        cfg.DaysBetweenPrompts,
		Logger:                    logger,
	})
	if err != nil {
		return nil, err
	}

	extractor := features.NewExtractor(logger)
	fit := fitscore.NewIntegrator(cfg.LogsDir, logger)

	orchestrator := ranking.NewOrchestrator(ranking.Options{
		Scorer:     scoring.NewScorer(),
		Extractor:  extractor,
		Learning:   learning.NewBooster(store, cfg.MinSamplesForLearning),
		Similarity: similarity.NewBooster(extractor),
		Fit:        fit,
		Store:      store,
		MinSamples: cfg.MinSamplesForLearning,
		Logger:     logger,
	})

	return &pipeline{
		cfg:          cfg,
		logger:       logger,
		store:        store,
		scanner:      scanning.NewScanner(cfg.OutputRoot, logger),
		extractor:    extractor,
		fit:          fit,
		orchestrator: orchestrator,
		collector:    feedback.NewCollector(store, logger),
	}, nil
}

// loadJobRecord reads and validates the structured job JSON produced by the
// ingestion collaborator.
func loadJobRecord(path string) (*types.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", path, err)
	}

	var job types.JobRecord
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}

	if err := validator.New().Struct(&job); err != nil {
		return nil, fmt.Errorf("invalid job record: %w", err)
	}
	return &job, nil
}
