// Package ranking combines the base scorer with the learning, content
// similarity, and fit-score boosters to pick the best reusable template for
// a job.
package ranking

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/template-pilot/internal/config"
	"github.com/jonathan/template-pilot/internal/features"
	"github.com/jonathan/template-pilot/internal/feedback"
	"github.com/jonathan/template-pilot/internal/fitscore"
	"github.com/jonathan/template-pilot/internal/learning"
	"github.com/jonathan/template-pilot/internal/scoring"
	"github.com/jonathan/template-pilot/internal/similarity"
	"github.com/jonathan/template-pilot/internal/types"
)

// Blend weights between the deterministic base score and the sum of the
// three boosts. Boosts never dominate the base score.
const (
	baseWeight  = 0.7
	boostWeight = 0.3
)

// Orchestrator runs the full scoring pipeline over a candidate list. All
// collaborators are constructor-injected; the orchestrator holds no
// persistent state of its own.
type Orchestrator struct {
	scorer     *scoring.Scorer
	extractor  *features.Extractor
	learning   *learning.Booster
	similarity *similarity.Booster
	fit        *fitscore.Integrator
	store      *feedback.Store
	minSamples int
	logger     *zap.Logger
}

// Options configures an Orchestrator.
type Options struct {
	Scorer     *scoring.Scorer
	Extractor  *features.Extractor
	Learning   *learning.Booster
	Similarity *similarity.Booster
	Fit        *fitscore.Integrator
	Store      *feedback.Store
	MinSamples int
	Logger     *zap.Logger
}

// NewOrchestrator wires the pipeline. MinSamples zero or negative falls
// back to the default cold-start threshold.
func NewOrchestrator(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MinSamples <= 0 {
		opts.MinSamples = config.DefaultMinSamplesForLearning
	}
	return &Orchestrator{
		scorer:     opts.Scorer,
		extractor:  opts.Extractor,
		learning:   opts.Learning,
		similarity: opts.Similarity,
		fit:        opts.Fit,
		store:      opts.Store,
		minSamples: opts.MinSamples,
		logger:     opts.Logger,
	}
}

// Rank scores every candidate and returns them best first. The sort is
// stable so equal totals keep their scan order. With enough recorded
// history the boosters blend into the total; during cold start the base
// score stands alone.
func (o *Orchestrator) Rank(job *types.JobRecord, candidates []*types.TemplateCandidate) []types.ScoredCandidate {
	if len(candidates) == 0 {
		return nil
	}

	enhanced := o.enhancedMode()
	o.logger.Debug("ranking candidates",
		zap.Int("count", len(candidates)),
		zap.Bool("enhanced", enhanced))

	if enhanced {
		o.fitVectorizer(job, candidates)
	}

	scored := make([]types.ScoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, o.scoreCandidate(candidate, job, enhanced))
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Total > scored[b].Total
	})
	return scored
}

// SelectBest returns the winning candidate for a job, or nil when no
// candidates exist. No candidates is not an error.
func (o *Orchestrator) SelectBest(job *types.JobRecord, candidates []*types.TemplateCandidate) *types.RankedResult {
	scored := o.Rank(job, candidates)
	if len(scored) == 0 {
		return nil
	}

	best := scored[0]
	return &types.RankedResult{
		FilePath:        best.Candidate.FilePath,
		Score:           best.Total,
		BaseScore:       best.BaseScore,
		LearningBoost:   best.LearningBoost,
		SimilarityBoost: best.SimilarityBoost,
		FitBoost:        best.FitBoost,
		Explanation:     explanation(best),
		Insights:        best.Insights,
		TotalCandidates: len(candidates),
	}
}

// enhancedMode reports whether enough history exists to trust the boosters.
func (o *Orchestrator) enhancedMode() bool {
	return o.store != nil && o.store.TotalSelections() >= o.minSamples
}

// fitVectorizer fits one shared vectorizer over the candidate corpus plus
// the job text, so per-document vectors are mutually comparable within this
// run.
func (o *Orchestrator) fitVectorizer(job *types.JobRecord, candidates []*types.TemplateCandidate) {
	if o.extractor == nil {
		return
	}

	paths := make([]string, len(candidates))
	for i, candidate := range candidates {
		paths[i] = candidate.FilePath
	}

	jobText := strings.ToLower(strings.Join(append(append([]string{job.Title}, job.Skills...), job.Software...), " "))
	o.extractor.FitCorpus(paths, jobText)
}

func (o *Orchestrator) scoreCandidate(candidate *types.TemplateCandidate, job *types.JobRecord, enhanced bool) types.ScoredCandidate {
	base, reasons := o.scorer.Score(candidate, job)

	sc := types.ScoredCandidate{
		Candidate: candidate,
		BaseScore: base,
		Reasons:   reasons,
		Total:     base,
	}
	if !enhanced {
		return sc
	}

	if o.learning != nil {
		boost, reason := o.learning.Boost(candidate.FilePath, job)
		sc.LearningBoost = boost
		if boost > 0 && reason != learning.NoHistoricalData {
			sc.Insights = append(sc.Insights, "ML: "+reason)
		}
	}

	if o.similarity != nil {
		boost, insights := o.similarity.Boost(candidate, job)
		sc.SimilarityBoost = boost
		for _, insight := range insights {
			sc.Insights = append(sc.Insights, "Content: "+insight)
		}
	}

	if o.fit != nil {
		boost, reason := o.fit.Boost(candidate.FilePath)
		sc.FitBoost = boost
		if reason != fitscore.NoPriorFitData {
			sc.Insights = append(sc.Insights, "Fit: "+reason)
		}
	}

	sc.Total = base*baseWeight + (sc.LearningBoost+sc.SimilarityBoost+sc.FitBoost)*boostWeight
	return sc
}

// explanation concatenates the base-score reasons and booster insights into
// the single string handed to the document-writer collaborator.
func explanation(sc types.ScoredCandidate) string {
	parts := make([]string, 0, len(sc.Reasons)+len(sc.Insights))
	for _, reason := range sc.Reasons {
		if reason != "" {
			parts = append(parts, reason)
		}
	}
	for _, insight := range sc.Insights {
		if insight != "" {
			parts = append(parts, insight)
		}
	}
	if len(parts) == 0 {
		return "Best available match"
	}
	return strings.Join(parts, " | ")
}
