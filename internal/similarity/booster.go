// Package similarity boosts candidates whose document content aligns with
// the job's role, skills, and experience profile.
package similarity

import (
	"fmt"

	"github.com/jonathan/template-pilot/internal/features"
	"github.com/jonathan/template-pilot/internal/types"
)

// Component weights. Skill overlap dominates because it is the most direct
// signal of content fit.
const (
	roleAlignmentWeight   = 0.3
	skillOverlapWeight    = 0.4
	experienceAlignWeight = 0.3
)

// Insight materiality thresholds. Sub-scores below these produce no
// insight string.
const (
	roleInsightThreshold       = 0.5
	skillInsightThreshold      = 0.3
	experienceInsightThreshold = 0.8
)

// defaultRequiredYears is assumed when the job does not state an
// experience requirement.
const defaultRequiredYears = 3

// Booster scores content alignment between a candidate document and a job.
type Booster struct {
	extractor *features.Extractor
}

// NewBooster returns a Booster reading candidate content through the given
// extractor.
func NewBooster(extractor *features.Extractor) *Booster {
	return &Booster{extractor: extractor}
}

// Boost returns the content-alignment boost for a candidate and any
// material insights. Unreadable documents contribute a zero boost rather
// than an error.
func (b *Booster) Boost(candidate *types.TemplateCandidate, job *types.JobRecord) (float64, []string) {
	feats, ok := b.extractor.Extract(candidate.FilePath)
	if !ok || feats.IsEmpty() {
		return 0.0, nil
	}

	var insights []string

	roleAlign, role := roleAlignment(feats)
	if roleAlign > roleInsightThreshold && role != "" {
		insights = append(insights, fmt.Sprintf("Strong %s role focus", role))
	}

	overlap := skillOverlap(feats, job)
	if overlap > skillInsightThreshold {
		insights = append(insights, fmt.Sprintf("Covers %.0f%% of required skills", overlap*100))
	}

	expAlign := experienceAlignment(feats.ExperienceYears, requiredYears(job))
	if expAlign >= experienceInsightThreshold && feats.ExperienceYears > 0 {
		insights = append(insights, fmt.Sprintf("Experience well matched (%d years)", feats.ExperienceYears))
	}

	boost := roleAlign*roleAlignmentWeight +
		overlap*skillOverlapWeight +
		expAlign*experienceAlignWeight

	return boost, insights
}

// roleAlignment is the share of role keywords belonging to the dominant
// role, or zero when the document mentions none.
func roleAlignment(feats *types.ContentFeatures) (float64, string) {
	role, count := feats.DominantRole()
	total := feats.TotalRoleKeywords()
	if total == 0 {
		return 0.0, ""
	}
	return float64(count) / float64(total), role
}

// skillOverlap is the fraction of the job's required tools found in the
// document's extracted skill set.
func skillOverlap(feats *types.ContentFeatures, job *types.JobRecord) float64 {
	required := job.RequiredTools()
	if len(required) == 0 {
		return 0.0
	}

	matched := 0
	for tool := range required {
		if feats.Skills[tool] {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// experienceAlignment compares estimated document experience to the job's
// requirement. Unknown candidate experience is neutral.
func experienceAlignment(candidateYears, requiredYears int) float64 {
	if candidateYears == 0 {
		return 0.5
	}

	diff := candidateYears - requiredYears
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs == 0:
		return 1.0
	case abs <= 1:
		return 0.8
	case abs <= 2:
		return 0.6
	case diff > 3:
		return 0.3 // overqualified
	case diff < -1:
		return 0.2 // underqualified
	default:
		return 0.5
	}
}

func requiredYears(job *types.JobRecord) int {
	if job.ExperienceYears > 0 {
		return job.ExperienceYears
	}
	return defaultRequiredYears
}
