package scoring

import (
	"testing"
	"time"

	"github.com/jonathan/template-pilot/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testScorer() *Scorer {
	return NewScorerAt(func() time.Time { return fixedNow })
}

func TestScore_ProductAnalystBeatsProjectManager(t *testing.T) {
	job := &types.JobRecord{
		JobID:    "job-1",
		Title:    "Senior Product Analyst",
		Skills:   []string{"Python", "SQL", "Tableau"},
		Software: []string{"Excel", "Power BI"},
	}

	pa := &types.TemplateCandidate{
		FilePath:       "output/Product Analyst - Analytics - Python, SQL, Tableau/PedroHerrera_PA_ANAL_B2C_2025.docx",
		Role:           "PA",
		Specialization: "ANAL",
		Tools:          []string{"Python", "SQL", "Tableau"},
		ModTime:        fixedNow.Add(-48 * time.Hour),
	}
	pjm := &types.TemplateCandidate{
		FilePath:       "output/Project Manager - General - Jira, Confluence/PedroHerrera_PJM_GEN_B2B_2024.docx",
		Role:           "PJM",
		Specialization: "GEN",
		Tools:          []string{"Jira", "Confluence"},
		ModTime:        fixedNow.Add(-48 * time.Hour),
	}

	scorer := testScorer()
	paScore, paReasons := scorer.Score(pa, job)
	pjmScore, _ := scorer.Score(pjm, job)

	assert.Greater(t, paScore, pjmScore)
	assert.Contains(t, paReasons, "Role match: PA")

	// Role sub-score must be exact (1.0) and the skills sub-score nonzero.
	assert.Equal(t, 1.0, scorer.roleScore("PA", job))
	assert.Greater(t, scorer.skillsScore(pa.Tools, job.RequiredTools()), 0.0)
}

func TestScore_BoundedByRoleFloor(t *testing.T) {
	job := &types.JobRecord{JobID: "job-2", Title: "Veterinary Surgeon"}
	candidate := &types.TemplateCandidate{
		Role:           "BA",
		Specialization: "DATA",
		Tools:          nil,
	}

	score, _ := testScorer().Score(candidate, job)

	// Role floor 0.1 * 0.40 with all other components at zero... except
	// specialization, which gives non-matching codes 0.4 on general titles.
	assert.GreaterOrEqual(t, score, 0.1*roleWeight)
	assert.LessOrEqual(t, score, 1.0)
}

func TestRoleScore_Tiers(t *testing.T) {
	scorer := testScorer()

	tests := []struct {
		name        string
		role        string
		title       string
		profileType string
		want        float64
	}{
		{"exact phrase", "DA", "Data Analyst - BI", "", 1.0},
		{"profile alias", "PO", "Growth Lead", "product_management", 0.8},
		{"loose overlap", "PA", "Insights Analyst", "", 0.6},
		{"manager fallback", "PJM", "Engineering Manager", "", 0.6},
		{"unrelated floor", "OM", "Graphic Designer", "", 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &types.JobRecord{Title: tt.title, ProfileType: tt.profileType}
			assert.Equal(t, tt.want, scorer.roleScore(tt.role, job))
		})
	}
}

func TestSkillsScore(t *testing.T) {
	scorer := testScorer()
	job := &types.JobRecord{
		Skills:   []string{"Python", "SQL", "Tableau"},
		Software: []string{"Excel", "Power BI"},
	}
	required := job.RequiredTools()
	require.Len(t, required, 5)

	t.Run("no tools", func(t *testing.T) {
		assert.Equal(t, 0.0, scorer.skillsScore(nil, required))
	})

	t.Run("no job requirements is neutral", func(t *testing.T) {
		assert.Equal(t, 0.5, scorer.skillsScore([]string{"Python"}, map[string]bool{}))
	})

	t.Run("single overlap has no bonus", func(t *testing.T) {
		assert.InDelta(t, 1.0/5.0, scorer.skillsScore([]string{"Python"}, required), 1e-9)
	})

	t.Run("two overlaps earn the bonus", func(t *testing.T) {
		assert.InDelta(t, 2.0/5.0+0.2, scorer.skillsScore([]string{"Python", "SQL"}, required), 1e-9)
	})

	t.Run("capped at one", func(t *testing.T) {
		tools := []string{"Python", "SQL", "Tableau", "Excel", "Power BI"}
		assert.Equal(t, 1.0, scorer.skillsScore(tools, required))
	})

	t.Run("duplicate tools counted once", func(t *testing.T) {
		assert.InDelta(t, 1.0/5.0, scorer.skillsScore([]string{"SQL", "sql"}, required), 1e-9)
	})
}

func TestSpecializationScore(t *testing.T) {
	scorer := testScorer()

	tests := []struct {
		name  string
		spec  string
		title string
		want  float64
	}{
		{"analytics exact", "ANAL", "senior data analyst", 1.0},
		{"analytics general partial", "GEN", "analytics engineer", 0.6},
		{"analytics mismatch", "COLL", "sql developer", 0.0},
		{"technical exact", "CODE", "software development lead", 1.0},
		{"general job prefers GEN", "GEN", "office coordinator", 0.8},
		{"general job other spec", "ANTE", "office coordinator", 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scorer.specializationScore(tt.spec, tt.title))
		})
	}
}

func TestRecencyScore_StepsAndMonotonicity(t *testing.T) {
	scorer := testScorer()

	assert.Equal(t, 1.0, scorer.recencyScore(fixedNow.Add(-3*24*time.Hour)))
	assert.Equal(t, 0.8, scorer.recencyScore(fixedNow.Add(-20*24*time.Hour)))
	assert.Equal(t, 0.6, scorer.recencyScore(fixedNow.Add(-60*24*time.Hour)))
	assert.Equal(t, 0.3, scorer.recencyScore(fixedNow.Add(-365*24*time.Hour)))
	assert.Equal(t, 0.0, scorer.recencyScore(time.Time{}))
}

func TestScore_RecencyMonotonicity(t *testing.T) {
	job := &types.JobRecord{Title: "Product Analyst", Skills: []string{"SQL"}}

	newer := &types.TemplateCandidate{
		Role: "PA", Specialization: "ANAL",
		Tools:   []string{"SQL"},
		ModTime: fixedNow.Add(-2 * 24 * time.Hour),
	}
	older := *newer
	older.ModTime = fixedNow.Add(-200 * 24 * time.Hour)

	scorer := testScorer()
	newScore, _ := scorer.Score(newer, job)
	oldScore, _ := scorer.Score(&older, job)

	assert.GreaterOrEqual(t, newScore, oldScore)
}

func TestInferRoleCode(t *testing.T) {
	assert.Equal(t, "PA", InferRoleCode("Senior Product Analyst"))
	assert.Equal(t, "PJM", InferRoleCode("IT Project Manager"))
	assert.Equal(t, RoleUnknown, InferRoleCode("Chief Happiness Officer"))
}
