package types

// TemplateRating is one explicit user rating of a template selection.
type TemplateRating struct {
	TemplatePath string             `json:"template_path"`
	JobID        string             `json:"job_id"`
	Rating       float64            `json:"rating" validate:"gte=1,lte=5"`
	FeedbackText string             `json:"feedback_text,omitempty"`
	Categories   map[string]float64 `json:"categories_rated,omitempty"`
	Timestamp    string             `json:"timestamp"`
}

// Category keys for per-aspect sub-ratings. Each is optional and
// individually skippable during collection.
const (
	CategoryRoleFit        = "role_fit"
	CategorySkillsMatch    = "skills_match"
	CategoryContentQuality = "content_quality"
	CategoryRelevance      = "relevance"
)

// FeedbackSession records one feedback attempt for a job, whether or not the
// user actually rated anything. Sessions drive prompt throttling: a session
// with FeedbackCollected=false must never have a matching TemplateRating.
type FeedbackSession struct {
	SessionID         string `json:"session_id"`
	JobID             string `json:"job_id"`
	JobTitle          string `json:"job_title"`
	OriginalTemplate  string `json:"original_template"`
	SelectedTemplate  string `json:"selected_template"`
	Timestamp         string `json:"timestamp"`
	FeedbackCollected bool   `json:"feedback_collected"`
}
