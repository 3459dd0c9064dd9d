package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/template-pilot/internal/types"
)

// Weights for the base score components.
const (
	roleWeight           = 0.40
	skillsWeight         = 0.35
	specializationWeight = 0.15
	recencyWeight        = 0.10
)

// Reason thresholds: a sub-score above its threshold is "notable" and must
// surface in the match reasons, the only user-facing justification.
const (
	roleReasonThreshold           = 0.7
	skillsReasonThreshold         = 0.5
	specializationReasonThreshold = 0.8
	recencyReasonThreshold        = 0.5
)

// analyticsSpecs are specialization codes counted as analytics-focused.
var analyticsSpecs = map[string]bool{"ANAL": true, "AIML": true, "ANDE": true, "ANCO": true}

// technicalSpecs are specialization codes counted as technical/engineering.
var technicalSpecs = map[string]bool{"CODE": true, "AIML": true}

// Scorer computes base fit scores. It is stateless and deterministic; the
// only environmental input is the clock used for recency.
type Scorer struct {
	now func() time.Time
}

// NewScorer returns a Scorer using the wall clock.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// NewScorerAt returns a Scorer with a fixed clock, for tests.
func NewScorerAt(now func() time.Time) *Scorer {
	return &Scorer{now: now}
}

// Score computes the weighted fit score of a candidate against a job,
// returning the score and the notable match reasons. The result is always in
// [0.04, 1.0]: the role floor of 0.1 guarantees a nonzero contribution so
// unrelated candidates stay distinguishable from one another.
func (s *Scorer) Score(candidate *types.TemplateCandidate, job *types.JobRecord) (float64, []string) {
	reasons := []string{}

	roleScore := s.roleScore(candidate.Role, job)
	skillsScore := s.skillsScore(candidate.Tools, job.RequiredTools())
	specScore := s.specializationScore(candidate.Specialization, job.TitleLower())
	recencyScore := s.recencyScore(candidate.ModTime)

	if roleScore > roleReasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Role match: %s", candidate.Role))
	}
	if skillsScore > skillsReasonThreshold {
		shown := candidate.Tools
		if len(shown) > 3 {
			shown = shown[:3]
		}
		reasons = append(reasons, fmt.Sprintf("Skills match: %s", strings.Join(shown, ", ")))
	}
	if specScore > specializationReasonThreshold {
		reasons = append(reasons, fmt.Sprintf("Specialization: %s", candidate.Specialization))
	}
	if recencyScore > recencyReasonThreshold {
		reasons = append(reasons, "Recent template")
	}

	score := roleScore*roleWeight +
		skillsScore*skillsWeight +
		specScore*specializationWeight +
		recencyScore*recencyWeight

	if score > 1.0 {
		score = 1.0
	}

	return score, reasons
}

// roleScore rates how well the candidate's role code fits the job title.
// Exact title phrase match scores 1.0, profile-type alias 0.8, loose keyword
// overlap 0.6, anything else the 0.1 floor.
func (s *Scorer) roleScore(role string, job *types.JobRecord) float64 {
	title := job.TitleLower()

	if InferRoleCode(title) == role {
		return 1.0
	}

	for _, alias := range profileRoles[strings.ToLower(job.ProfileType)] {
		if role == alias {
			return 0.8
		}
	}

	switch role {
	case "PA":
		if containsAny(title, "analyst", "analysis", "product") {
			return 0.6
		}
	case "DA":
		if containsAny(title, "data", "analytics", "analyst") {
			return 0.6
		}
	case "PM", "PO":
		if strings.Contains(title, "product") {
			return 0.6
		}
	case "PJM":
		if strings.Contains(title, "manager") {
			return 0.6
		}
	}

	return 0.1
}

// skillsScore rates the overlap between the candidate's tool list and the
// job's required skills and software. No tools scores 0; a job with no
// stated requirements is neutral 0.5. Two or more overlapping tools earn a
// +0.2 bonus, capped at 1.0.
func (s *Scorer) skillsScore(tools []string, required map[string]bool) float64 {
	if len(tools) == 0 {
		return 0.0
	}
	if len(required) == 0 {
		return 0.5
	}

	overlap := 0
	seen := map[string]bool{}
	for _, tool := range tools {
		t := strings.ToLower(strings.TrimSpace(tool))
		if required[t] && !seen[t] {
			seen[t] = true
			overlap++
		}
	}

	ratio := float64(overlap) / float64(len(required))
	if overlap >= 2 {
		ratio += 0.2
	}
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

// specializationScore rates the candidate's specialization code against the
// domain bucket implied by the job title.
func (s *Scorer) specializationScore(spec, title string) float64 {
	switch {
	case containsAny(title, "analytics", "data", "sql", "tableau", "python"):
		if analyticsSpecs[spec] {
			return 1.0
		}
		if spec == "GEN" {
			return 0.6
		}
		return 0.0
	case containsAny(title, "code", "development", "engineering"):
		if technicalSpecs[spec] {
			return 1.0
		}
		if spec == "GEN" {
			return 0.6
		}
		return 0.0
	default:
		if spec == "GEN" {
			return 0.8
		}
		return 0.4
	}
}

// recencyScore is a step function on file age. A missing timestamp scores 0.
func (s *Scorer) recencyScore(modTime time.Time) float64 {
	if modTime.IsZero() {
		return 0.0
	}

	age := s.now().Sub(modTime)
	switch {
	case age <= 7*24*time.Hour:
		return 1.0
	case age <= 30*24*time.Hour:
		return 0.8
	case age <= 90*24*time.Hour:
		return 0.6
	default:
		return 0.3
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
