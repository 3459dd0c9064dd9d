package fitscore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateName = "PedroHerrera_PA_ANAL_B2C_2025.docx"

func writeLog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestBoost_NoLogsDirectory(t *testing.T) {
	integrator := NewIntegrator(filepath.Join(t.TempDir(), "missing"), nil)

	boost, reason := integrator.Boost(templateName)

	assert.Equal(t, 0.0, boost)
	assert.Equal(t, NoPriorFitData, reason)
}

func TestBoost_PerformanceBands(t *testing.T) {
	tests := []struct {
		name      string
		fitScore  string
		wantBoost float64
	}{
		{"high performer", "0.85", 0.15},
		{"good performer", "0.65", 0.08},
		{"average performer", "0.45", 0.0},
		{"low performer", "0.20", -0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeLog(t, dir, "run.log", "Final fit score: "+tt.fitScore+" for template "+templateName+"\n")

			boost, reason := integrator(t, dir).Boost("output/folder/" + templateName)

			assert.InDelta(t, tt.wantBoost, boost, 1e-9)
			assert.NotEqual(t, NoPriorFitData, reason)
			assert.Contains(t, reason, tt.fitScore[:4])
		})
	}
}

func integrator(t *testing.T, dir string) *Integrator {
	t.Helper()
	return NewIntegrator(dir, nil)
}

func TestBoost_TakesHighestLoggedScore(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "old.log", "Final fit score: 0.35 after generating "+templateName+"\n")
	writeLog(t, dir, "new.log", "Final fit score: 0.82 after generating "+templateName+"\n")

	boost, _ := integrator(t, dir).Boost(templateName)

	assert.InDelta(t, 0.15, boost, 1e-9)
}

func TestBoost_CachesNegativeLookups(t *testing.T) {
	dir := t.TempDir()
	i := integrator(t, dir)

	_, reason := i.Boost(templateName)
	require.Equal(t, NoPriorFitData, reason)

	// A log appearing later in the process is not picked up; lookups are
	// memoized for the process lifetime.
	writeLog(t, dir, "late.log", "Final fit score: 0.90 for "+templateName+"\n")
	boost, reason := i.Boost(templateName)

	assert.Equal(t, 0.0, boost)
	assert.Equal(t, NoPriorFitData, reason)
}

func TestSuccessRate_CountsUsageAndSuccesses(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "runs.log",
		"Selected template: "+templateName+"\n"+
			"run completed: "+templateName+"\n"+
			"Selected template: "+templateName+"\n")

	rate, uses := integrator(t, dir).SuccessRate(templateName)

	assert.Equal(t, 2, uses)
	assert.InDelta(t, 0.5, rate, 1e-9)
}

func TestSuccessRate_NoMentions(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "runs.log", "nothing about templates here\n")

	rate, uses := integrator(t, dir).SuccessRate(templateName)

	assert.Equal(t, 0, uses)
	assert.Equal(t, 0.0, rate)
}

func TestInsights(t *testing.T) {
	dir := t.TempDir()
	i := integrator(t, dir)

	insights := i.Insights("some/path/" + templateName)

	assert.Equal(t, templateName, insights.TemplateName)
	assert.Equal(t, "Poor", insights.PerformanceLevel)
	assert.Equal(t, "Insufficient data - needs more usage", insights.Recommendation)
}
