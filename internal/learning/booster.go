// Package learning boosts candidate scores using the recorded outcomes of
// past selections.
package learning

import (
	"fmt"
	"strings"

	"github.com/jonathan/template-pilot/internal/config"
	"github.com/jonathan/template-pilot/internal/feedback"
	"github.com/jonathan/template-pilot/internal/scoring"
	"github.com/jonathan/template-pilot/internal/types"
)

// NoHistoricalData is the reason returned during cold start or for
// templates that have never been selected.
const NoHistoricalData = "No historical data"

// Contribution weights. Ratings weigh heaviest because they are explicit
// signal; success rate and role performance are inferred.
const (
	successRateWeight     = 0.3
	avgRatingWeight       = 0.4
	rolePerformanceWeight = 0.3
)

// Booster converts a template's historical performance into a score boost.
type Booster struct {
	store      *feedback.Store
	minSamples int
}

// NewBooster returns a Booster over the given store. minSamples is the
// system-wide selection count below which no boost is produced; zero or
// negative falls back to the default.
func NewBooster(store *feedback.Store, minSamples int) *Booster {
	if minSamples <= 0 {
		minSamples = config.DefaultMinSamplesForLearning
	}
	return &Booster{store: store, minSamples: minSamples}
}

// Boost returns the historical boost for a template against a job, with a
// human-readable reason. Cold start (too few selections system-wide) and
// never-selected templates both return exactly zero.
func (b *Booster) Boost(templatePath string, job *types.JobRecord) (float64, string) {
	if b.store.TotalSelections() < b.minSamples {
		return 0.0, NoHistoricalData
	}

	perf, ok := b.store.Performance(templatePath)
	if !ok || perf.TotalSelections == 0 {
		return 0.0, NoHistoricalData
	}

	boost := 0.0
	var parts []string

	if perf.SuccessRate > 0 {
		boost += perf.SuccessRate * successRateWeight
		parts = append(parts, fmt.Sprintf("Success rate: %.0f%%", perf.SuccessRate*100))
	}

	if perf.AvgUserRating > 0 {
		boost += perf.AvgUserRating / 5.0 * avgRatingWeight
		parts = append(parts, fmt.Sprintf("Avg rating: %.1f/5", perf.AvgUserRating))
	}

	role := scoring.InferRoleCode(job.Title)
	if rolePerf, ok := perf.RolePerformance[role]; ok && rolePerf > 0 {
		boost += rolePerf * rolePerformanceWeight
		parts = append(parts, fmt.Sprintf("Role performance: %.0f%%", rolePerf*100))
	}

	if boost > 1.0 {
		boost = 1.0
	}

	reason := "Historical performance"
	if len(parts) > 0 {
		reason = strings.Join(parts, " | ")
	}
	return boost, reason
}

// Record stores a completed selection so future rankings learn from it.
func (b *Booster) Record(job *types.JobRecord, templatePath string, autoSelected bool, score float64, rating *float64, outcome string) error {
	return b.store.RecordSelection(job, templatePath, autoSelected, score, rating, outcome)
}
