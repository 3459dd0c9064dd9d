package types

// RankedResult is the outcome of one ranking run: the winning candidate, its
// aggregate score, the individual score components, and a human-readable
// explanation for the caller.
type RankedResult struct {
	FilePath        string   `json:"file_path"`
	Score           float64  `json:"score"`
	BaseScore       float64  `json:"base_score"`
	LearningBoost   float64  `json:"learning_boost"`
	SimilarityBoost float64  `json:"similarity_boost"`
	FitBoost        float64  `json:"fit_boost"`
	Explanation     string   `json:"explanation"`
	Insights        []string `json:"insights,omitempty"`
	TotalCandidates int      `json:"total_candidates"`
}

// ScoredCandidate pairs a candidate with its per-run score breakdown. The
// orchestrator exposes the full scored list so callers can render an
// analysis table, not just the winner.
type ScoredCandidate struct {
	Candidate       *TemplateCandidate
	BaseScore       float64
	LearningBoost   float64
	SimilarityBoost float64
	FitBoost        float64
	Total           float64
	Reasons         []string
	Insights        []string
}
