// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values fall back to defaults.
type Config struct {
	// Paths
	OutputRoot string `json:"output_root,omitempty"` // Directory scanned for reusable templates
	DataDir    string `json:"data_dir,omitempty"`    // Directory for learning/feedback stores
	LogsDir    string `json:"logs_dir,omitempty"`    // Directory holding prior run logs with fit scores

	// Behavior
	Interactive bool `json:"interactive,omitempty"` // Prompt for feedback after selection
	Verbose     bool `json:"verbose,omitempty"`     // Print detailed candidate analysis
	JSONLogs    bool `json:"json_logs,omitempty"`   // Emit logs as JSON
	Debug       bool `json:"debug,omitempty"`       // Enable debug logging

	// Learning parameters
	MinSamplesForLearning     int `json:"min_samples_for_learning,omitempty" validate:"gte=0"`
	MinSessionsBeforeThrottle int `json:"min_sessions_before_throttle,omitempty" validate:"gte=0"`
	DaysBetweenPrompts        int `json:"days_between_prompts,omitempty" validate:"gte=0"`
}

// Default learning parameters, matching the values the boosters were tuned
// against.
const (
	DefaultMinSamplesForLearning     = 3
	DefaultMinSessionsBeforeThrottle = 2
	DefaultDaysBetweenPrompts        = 7
)

// DefaultConfig returns the configuration used when no config file is given.
func DefaultConfig() Config {
	return Config{
		OutputRoot:                "./output",
		DataDir:                   "./data",
		LogsDir:                   "./logs",
		MinSamplesForLearning:     DefaultMinSamplesForLearning,
		MinSessionsBeforeThrottle: DefaultMinSessionsBeforeThrottle,
		DaysBetweenPrompts:        DefaultDaysBetweenPrompts,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.OutputRoot != "" {
		if info, err := os.Stat(c.OutputRoot); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_root is not a directory: %s", c.OutputRoot)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.OutputRoot == "" {
		result.OutputRoot = defaults.OutputRoot
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.LogsDir == "" {
		result.LogsDir = defaults.LogsDir
	}
	if result.MinSamplesForLearning == 0 {
		result.MinSamplesForLearning = defaults.MinSamplesForLearning
	}
	if result.MinSessionsBeforeThrottle == 0 {
		result.MinSessionsBeforeThrottle = defaults.MinSessionsBeforeThrottle
	}
	if result.DaysBetweenPrompts == 0 {
		result.DaysBetweenPrompts = defaults.DaysBetweenPrompts
	}

	return result
}
