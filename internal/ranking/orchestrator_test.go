package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/template-pilot/internal/features"
	"github.com/jonathan/template-pilot/internal/feedback"
	"github.com/jonathan/template-pilot/internal/fitscore"
	"github.com/jonathan/template-pilot/internal/learning"
	"github.com/jonathan/template-pilot/internal/scoring"
	"github.com/jonathan/template-pilot/internal/similarity"
	"github.com/jonathan/template-pilot/internal/types"
)

var rankNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const (
	paTemplate  = "output/Product Analyst - Analytics - Python, SQL, Tableau/PedroHerrera_PA_ANAL_B2C_2025.docx"
	pjmTemplate = "output/Project Manager - General - Jira, Confluence/PedroHerrera_PJM_GEN_B2B_2024.docx"
)

func testOrchestrator(t *testing.T) (*Orchestrator, *feedback.Store) {
	t.Helper()

	store, err := feedback.NewStore(feedback.StoreOptions{DataDir: t.TempDir()})
	require.NoError(t, err)

	extractor := features.NewExtractor(nil)
	orchestrator := NewOrchestrator(Options{
		Scorer:     scoring.NewScorerAt(func() time.Time { return rankNow }),
		Extractor:  extractor,
		Learning:   learning.NewBooster(store, 3),
		Similarity: similarity.NewBooster(extractor),
		Fit:        fitscore.NewIntegrator(t.TempDir(), nil),
		Store:      store,
		MinSamples: 3,
	})
	return orchestrator, store
}

func analystJob() *types.JobRecord {
	return &types.JobRecord{
		JobID:    "job-1",
		Title:    "Senior Product Analyst",
		Skills:   []string{"Python", "SQL", "Tableau"},
		Software: []string{"Excel", "Power BI"},
	}
}

func testCandidates() []*types.TemplateCandidate {
	return []*types.TemplateCandidate{
		{
			FilePath:       paTemplate,
			Role:           "PA",
			Specialization: "ANAL",
			Tools:          []string{"Python", "SQL", "Tableau"},
			ModTime:        rankNow.Add(-48 * time.Hour),
		},
		{
			FilePath:       pjmTemplate,
			Role:           "PJM",
			Specialization: "GEN",
			Tools:          []string{"Jira", "Confluence"},
			ModTime:        rankNow.Add(-48 * time.Hour),
		},
	}
}

func TestSelectBest_NoCandidatesReturnsNil(t *testing.T) {
	orchestrator, _ := testOrchestrator(t)

	assert.Nil(t, orchestrator.SelectBest(analystJob(), nil))
	assert.Nil(t, orchestrator.SelectBest(analystJob(), []*types.TemplateCandidate{}))
}

func TestSelectBest_ColdStartUsesBaseScoreOnly(t *testing.T) {
	orchestrator, _ := testOrchestrator(t)

	result := orchestrator.SelectBest(analystJob(), testCandidates())

	require.NotNil(t, result)
	assert.Equal(t, paTemplate, result.FilePath)
	assert.Equal(t, result.BaseScore, result.Score)
	assert.Zero(t, result.LearningBoost)
	assert.Zero(t, result.SimilarityBoost)
	assert.Zero(t, result.FitBoost)
	assert.Equal(t, 2, result.TotalCandidates)
	assert.Contains(t, result.Explanation, "Role match: PA")
}

func TestSelectBest_EnhancedBlendsBoosts(t *testing.T) {
	orchestrator, store := testOrchestrator(t)
	job := analystJob()

	rating := 4.5
	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordSelection(job, paTemplate, true, 0.8, &rating, types.OutcomeSuccess))
	}

	result := orchestrator.SelectBest(job, testCandidates())

	require.NotNil(t, result)
	assert.Equal(t, paTemplate, result.FilePath)
	assert.Greater(t, result.LearningBoost, 0.0)
	assert.Contains(t, result.Explanation, "ML: ")

	boosts := result.LearningBoost + result.SimilarityBoost + result.FitBoost
	assert.InDelta(t, result.BaseScore*baseWeight+boosts*boostWeight, result.Score, 1e-9)
}

func TestRank_StableOrderOnTies(t *testing.T) {
	orchestrator, _ := testOrchestrator(t)

	first := &types.TemplateCandidate{
		FilePath: "output/a/PedroHerrera_PA_ANAL_B2C_2025.docx",
		Role:     "PA", Specialization: "ANAL",
		Tools:   []string{"Python"},
		ModTime: rankNow.Add(-24 * time.Hour),
	}
	second := &types.TemplateCandidate{
		FilePath: "output/b/PedroHerrera_PA_ANAL_B2B_2025.docx",
		Role:     "PA", Specialization: "ANAL",
		Tools:   []string{"Python"},
		ModTime: rankNow.Add(-24 * time.Hour),
	}

	scored := orchestrator.Rank(&types.JobRecord{JobID: "job-1", Title: "Product Analyst", Skills: []string{"Python"}},
		[]*types.TemplateCandidate{first, second})

	require.Len(t, scored, 2)
	assert.Equal(t, scored[0].Total, scored[1].Total)
	assert.Equal(t, first.FilePath, scored[0].Candidate.FilePath)
}

func TestRank_SortsBestFirst(t *testing.T) {
	orchestrator, _ := testOrchestrator(t)

	scored := orchestrator.Rank(analystJob(), testCandidates())

	require.Len(t, scored, 2)
	assert.Equal(t, paTemplate, scored[0].Candidate.FilePath)
	assert.GreaterOrEqual(t, scored[0].Total, scored[1].Total)
}
