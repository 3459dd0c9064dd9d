package types

// Outcome tags recorded against a selection. "success" trains boosters
// toward a template; "modified" and "rejected" train away from it.
const (
	OutcomeSuccess  = "success"
	OutcomeModified = "modified"
	OutcomeRejected = "rejected"
)

// ValidOutcome reports whether s is a recognized outcome tag.
func ValidOutcome(s string) bool {
	return s == OutcomeSuccess || s == OutcomeModified || s == OutcomeRejected
}

// SelectionHistory is one append-only log entry describing a completed
// template selection. Entries are never mutated after creation.
type SelectionHistory struct {
	JobID            string   `json:"job_id"`
	JobTitle         string   `json:"job_title"`
	SelectedTemplate string   `json:"selected_template"`
	AutoSelected     bool     `json:"auto_selected"`
	SelectionScore   float64  `json:"selection_score"`
	UserRating       *float64 `json:"user_rating,omitempty"` // 1-5 stars
	Outcome          string   `json:"outcome,omitempty"`
	Timestamp        string   `json:"timestamp"` // RFC 3339
}

// TemplatePerformance aggregates outcomes for a single template path. It is
// updated incrementally on every recorded selection and persisted as-is;
// the history log is never replayed to rebuild it.
type TemplatePerformance struct {
	TemplatePath    string             `json:"template_path"`
	TotalSelections int                `json:"total_selections"`
	UserRatings     []float64          `json:"user_ratings"`
	SuccessRate     float64            `json:"success_rate"`
	AvgUserRating   float64            `json:"avg_user_rating"`
	RolePerformance map[string]float64 `json:"role_performance"`
	LastUsed        string             `json:"last_used,omitempty"`
}

// NewTemplatePerformance returns an empty aggregate for the given path.
func NewTemplatePerformance(path string) *TemplatePerformance {
	return &TemplatePerformance{
		TemplatePath:    path,
		UserRatings:     []float64{},
		RolePerformance: map[string]float64{},
	}
}
