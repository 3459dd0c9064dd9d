package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/template-pilot/internal/config"
)

func writeJSONFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// writeTestConfig builds a config file whose paths all live under dir.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.json")
	writeJSONFile(t, path, config.Config{
		OutputRoot: filepath.Join(dir, "output"),
		DataDir:    filepath.Join(dir, "data"),
		LogsDir:    filepath.Join(dir, "logs"),
	})
	return path
}

func TestLoadRuntimeConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadRuntimeConfig("")

	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadRuntimeConfig_MergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, dir)

	cfg, err := loadRuntimeConfig(path)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "output"), cfg.OutputRoot)
	assert.Equal(t, config.DefaultMinSamplesForLearning, cfg.MinSamplesForLearning)
	assert.Equal(t, config.DefaultDaysBetweenPrompts, cfg.DaysBetweenPrompts)
}

func TestLoadRuntimeConfig_MissingFileFails(t *testing.T) {
	_, err := loadRuntimeConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadJobRecord(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid record", func(t *testing.T) {
		path := filepath.Join(dir, "job.json")
		writeJSONFile(t, path, map[string]interface{}{
			"job_id": "job-1",
			"title":  "Senior Product Analyst",
			"skills": []string{"Python", "SQL"},
		})

		job, err := loadJobRecord(path)

		require.NoError(t, err)
		assert.Equal(t, "Senior Product Analyst", job.Title)
		assert.Equal(t, []string{"Python", "SQL"}, job.Skills)
	})

	t.Run("missing required fields", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		writeJSONFile(t, path, map[string]interface{}{"title": "No ID"})

		_, err := loadJobRecord(path)

		assert.ErrorContains(t, err, "invalid job record")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := loadJobRecord(path)

		assert.ErrorContains(t, err, "failed to parse job JSON")
	})
}

func TestBuildPipeline(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.OutputRoot = filepath.Join(dir, "output")
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.LogsDir = filepath.Join(dir, "logs")

	p, err := buildPipeline(cfg)

	require.NoError(t, err)
	assert.NotNil(t, p.store)
	assert.NotNil(t, p.orchestrator)
	assert.DirExists(t, cfg.DataDir)
}
