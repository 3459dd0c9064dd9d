// Package feedback owns the persisted learning state: the selection history
// log, per-template performance aggregates, user ratings, and feedback
// sessions. It also runs the interactive feedback prompts.
package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/template-pilot/internal/config"
	"github.com/jonathan/template-pilot/internal/schemas"
	"github.com/jonathan/template-pilot/internal/scoring"
	"github.com/jonathan/template-pilot/internal/types"
)

// Store file names under the data directory.
const (
	historyFile     = "selection_history.json"
	performanceFile = "template_performance.json"
	ratingsFile     = "user_ratings.json"
	sessionsFile    = "feedback_sessions.json"
)

// StoreOptions configures a Store. Zero values fall back to the config
// package defaults.
type StoreOptions struct {
	DataDir                   string
	MinSessionsBeforeThrottle int
	DaysBetweenPrompts        int
	Logger                    *zap.Logger
}

// Store holds all persisted learning and feedback state in memory and
// synchronously writes it back to JSON files on every mutation. It is the
// single owner of the data directory; boosters receive it by injection.
//
// Store is not safe for concurrent use. The CLI is single-threaded per
// invocation, which is the only supported access pattern.
type Store struct {
	dataDir                   string
	minSessionsBeforeThrottle int
	daysBetweenPrompts        int
	logger                    *zap.Logger

	now   func() time.Time
	newID func() string

	history     []types.SelectionHistory
	performance map[string]*types.TemplatePerformance
	ratings     []types.TemplateRating
	sessions    []types.FeedbackSession

	// promptedJobs tracks jobs prompted during this process, collected or
	// skipped. Deliberately not persisted: a skipped job becomes promptable
	// again in the next run.
	promptedJobs map[string]bool
}

// NewStore creates the data directory if needed and loads any existing
// state. Missing or corrupt store files start empty with a warning; they
// are not fatal.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MinSessionsBeforeThrottle == 0 {
		opts.MinSessionsBeforeThrottle = config.DefaultMinSessionsBeforeThrottle
	}
	if opts.DaysBetweenPrompts == 0 {
		opts.DaysBetweenPrompts = config.DefaultDaysBetweenPrompts
	}

	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", opts.DataDir, err)
	}

	s := &Store{
		dataDir:                   opts.DataDir,
		minSessionsBeforeThrottle: opts.MinSessionsBeforeThrottle,
		daysBetweenPrompts:        opts.DaysBetweenPrompts,
		logger:                    opts.Logger,
		now:                       time.Now,
		newID:                     uuid.NewString,
		performance:               map[string]*types.TemplatePerformance{},
		promptedJobs:              map[string]bool{},
	}

	s.loadFile(historyFile, &s.history)
	s.loadFile(performanceFile, &s.performance)
	s.loadFile(ratingsFile, &s.ratings)
	s.loadFile(sessionsFile, &s.sessions)

	if s.performance == nil {
		s.performance = map[string]*types.TemplatePerformance{}
	}

	return s, nil
}

// TotalSelections reports how many selections have been recorded system-wide.
func (s *Store) TotalSelections() int {
	return len(s.history)
}

// Performance returns the aggregate for a template path, if any exists.
func (s *Store) Performance(templatePath string) (*types.TemplatePerformance, bool) {
	perf, ok := s.performance[templatePath]
	return perf, ok
}

// History returns a copy of the selection log, oldest first.
func (s *Store) History() []types.SelectionHistory {
	out := make([]types.SelectionHistory, len(s.history))
	copy(out, s.history)
	return out
}

// RecordSelection appends a history row and incrementally updates the
// template's performance aggregate. Rating may be nil; outcome may be empty
// when the result is not yet known (record-outcome fills it in later as a
// fresh row).
func (s *Store) RecordSelection(job *types.JobRecord, templatePath string, autoSelected bool, score float64, rating *float64, outcome string) error {
	if outcome != "" && !types.ValidOutcome(outcome) {
		return fmt.Errorf("invalid outcome %q: must be one of success, modified, rejected", outcome)
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return fmt.Errorf("invalid rating %.1f: must be between 1 and 5", *rating)
	}

	timestamp := s.now().UTC().Format(time.RFC3339)

	s.history = append(s.history, types.SelectionHistory{
		JobID:            job.JobID,
		JobTitle:         job.Title,
		SelectedTemplate: templatePath,
		AutoSelected:     autoSelected,
		SelectionScore:   score,
		UserRating:       rating,
		Outcome:          outcome,
		Timestamp:        timestamp,
	})

	s.updatePerformance(templatePath, scoring.InferRoleCode(job.Title), outcome, rating, timestamp)

	if err := s.saveFile(historyFile, "selection_history.schema.json", s.history); err != nil {
		return err
	}
	return s.saveFile(performanceFile, "template_performance.schema.json", s.performance)
}

// AddRating appends an explicit user rating. When a performance record
// exists for the rated template the rating also folds into its average, so
// interactively collected feedback trains the learning booster.
func (s *Store) AddRating(rating types.TemplateRating) error {
	if rating.Rating < 1 || rating.Rating > 5 {
		return fmt.Errorf("invalid rating %.1f: must be between 1 and 5", rating.Rating)
	}
	if rating.Timestamp == "" {
		rating.Timestamp = s.now().UTC().Format(time.RFC3339)
	}

	s.ratings = append(s.ratings, rating)

	if perf, ok := s.performance[rating.TemplatePath]; ok {
		perf.UserRatings = append(perf.UserRatings, rating.Rating)
		sum := 0.0
		for _, r := range perf.UserRatings {
			sum += r
		}
		perf.AvgUserRating = sum / float64(len(perf.UserRatings))
		if err := s.saveFile(performanceFile, "template_performance.schema.json", s.performance); err != nil {
			return err
		}
	}

	return s.saveFile(ratingsFile, "user_ratings.schema.json", s.ratings)
}

// NewSession builds a FeedbackSession stamped with a fresh ID and the
// current time. Callers record it with RecordSession once its
// FeedbackCollected flag is settled.
func (s *Store) NewSession(job *types.JobRecord, originalTemplate, selectedTemplate string) types.FeedbackSession {
	return types.FeedbackSession{
		SessionID:        s.newID(),
		JobID:            job.JobID,
		JobTitle:         job.Title,
		OriginalTemplate: originalTemplate,
		SelectedTemplate: selectedTemplate,
		Timestamp:        s.now().UTC().Format(time.RFC3339),
	}
}

// RecordSession persists a feedback session. Sessions are recorded whether
// or not feedback was collected; the throttling logic depends on seeing
// skipped sessions too.
func (s *Store) RecordSession(session types.FeedbackSession) error {
	s.sessions = append(s.sessions, session)
	s.promptedJobs[session.JobID] = true
	return s.saveFile(sessionsFile, "feedback_sessions.schema.json", s.sessions)
}

// ShouldPrompt decides whether to ask the user for feedback on this job.
// A job is prompted at most once per run; once its feedback is actually
// collected it is never prompted again, while a skipped job becomes
// promptable in later runs. During cold start (fewer selections than the
// throttle minimum) every new job prompts; afterwards prompts are spaced
// at least daysBetweenPrompts apart.
func (s *Store) ShouldPrompt(jobID string) bool {
	if s.promptedJobs[jobID] {
		return false
	}
	for _, session := range s.sessions {
		if session.JobID == jobID && session.FeedbackCollected {
			return false
		}
	}

	if len(s.history) < s.minSessionsBeforeThrottle {
		return true
	}

	last, ok := s.lastSessionTime()
	if !ok {
		return true
	}
	return s.now().Sub(last) >= time.Duration(s.daysBetweenPrompts)*24*time.Hour
}

func (s *Store) lastSessionTime() (time.Time, bool) {
	var last time.Time
	found := false
	for _, session := range s.sessions {
		t, err := time.Parse(time.RFC3339, session.Timestamp)
		if err != nil {
			continue
		}
		if !found || t.After(last) {
			last = t
			found = true
		}
	}
	return last, found
}

// updatePerformance applies one selection to a template's running
// aggregates. Success rates are running proportions over the selection
// count; role performance is a 2-point moving average so recent outcomes
// dominate.
func (s *Store) updatePerformance(templatePath, roleCode, outcome string, rating *float64, timestamp string) {
	perf, ok := s.performance[templatePath]
	if !ok {
		perf = types.NewTemplatePerformance(templatePath)
		s.performance[templatePath] = perf
	}

	perf.TotalSelections++
	perf.LastUsed = timestamp

	if rating != nil {
		perf.UserRatings = append(perf.UserRatings, *rating)
		sum := 0.0
		for _, r := range perf.UserRatings {
			sum += r
		}
		perf.AvgUserRating = sum / float64(len(perf.UserRatings))
	}

	// Unseen roles start from zero, so a first success lands at 0.5.
	n := float64(perf.TotalSelections)
	switch outcome {
	case types.OutcomeSuccess:
		perf.SuccessRate = (perf.SuccessRate*(n-1) + 1) / n
		perf.RolePerformance[roleCode] = (perf.RolePerformance[roleCode] + 1) / 2
	case types.OutcomeModified, types.OutcomeRejected:
		perf.SuccessRate = perf.SuccessRate * (n - 1) / n
		perf.RolePerformance[roleCode] = perf.RolePerformance[roleCode] / 2
	}
}

// LearningStats summarizes the selection log for reporting.
type LearningStats struct {
	TotalSelections   int            `json:"total_selections"`
	AutoSelections    int            `json:"auto_selections"`
	AutoSelectionRate float64        `json:"auto_selection_rate"`
	TemplatesTracked  int            `json:"templates_tracked"`
	AvgSelectionScore float64        `json:"avg_selection_score"`
	OutcomeCounts     map[string]int `json:"outcome_counts"`
	LearningActive    bool           `json:"learning_active"`
}

// Learning reports aggregate statistics over the selection history.
// minSamples is the system-wide threshold above which boosters engage.
func (s *Store) Learning(minSamples int) LearningStats {
	stats := LearningStats{
		TotalSelections:  len(s.history),
		TemplatesTracked: len(s.performance),
		OutcomeCounts:    map[string]int{},
		LearningActive:   len(s.history) >= minSamples,
	}

	scoreSum := 0.0
	for _, entry := range s.history {
		if entry.AutoSelected {
			stats.AutoSelections++
		}
		scoreSum += entry.SelectionScore
		if entry.Outcome != "" {
			stats.OutcomeCounts[entry.Outcome]++
		}
	}
	if stats.TotalSelections > 0 {
		stats.AutoSelectionRate = float64(stats.AutoSelections) / float64(stats.TotalSelections)
		stats.AvgSelectionScore = scoreSum / float64(stats.TotalSelections)
	}

	return stats
}

// FeedbackStats summarizes collected feedback for reporting.
type FeedbackStats struct {
	TotalSessions     int                `json:"total_sessions"`
	FeedbackCollected int                `json:"feedback_collected"`
	CollectionRate    float64            `json:"collection_rate"`
	TotalRatings      int                `json:"total_ratings"`
	AvgRating         float64            `json:"avg_rating"`
	CategoryAverages  map[string]float64 `json:"category_averages"`
}

// Feedback reports aggregate statistics over sessions and ratings.
func (s *Store) Feedback() FeedbackStats {
	stats := FeedbackStats{
		TotalSessions:    len(s.sessions),
		TotalRatings:     len(s.ratings),
		CategoryAverages: map[string]float64{},
	}

	for _, session := range s.sessions {
		if session.FeedbackCollected {
			stats.FeedbackCollected++
		}
	}
	if stats.TotalSessions > 0 {
		stats.CollectionRate = float64(stats.FeedbackCollected) / float64(stats.TotalSessions)
	}

	ratingSum := 0.0
	categorySums := map[string]float64{}
	categoryCounts := map[string]int{}
	for _, rating := range s.ratings {
		ratingSum += rating.Rating
		for category, value := range rating.Categories {
			categorySums[category] += value
			categoryCounts[category]++
		}
	}
	if stats.TotalRatings > 0 {
		stats.AvgRating = ratingSum / float64(stats.TotalRatings)
	}
	for category, sum := range categorySums {
		stats.CategoryAverages[category] = sum / float64(categoryCounts[category])
	}

	return stats
}

// Performances returns every tracked template aggregate, sorted by path for
// stable report output.
func (s *Store) Performances() []*types.TemplatePerformance {
	out := make([]*types.TemplatePerformance, 0, len(s.performance))
	for _, perf := range s.performance {
		out = append(out, perf)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].TemplatePath < out[b].TemplatePath })
	return out
}

// TopRated returns up to limit templates with at least one user rating,
// best average rating first. Ties break toward more selections, then by
// path for stable output.
func (s *Store) TopRated(limit int) []*types.TemplatePerformance {
	rated := make([]*types.TemplatePerformance, 0, len(s.performance))
	for _, perf := range s.performance {
		if len(perf.UserRatings) > 0 {
			rated = append(rated, perf)
		}
	}

	sort.Slice(rated, func(a, b int) bool {
		if rated[a].AvgUserRating != rated[b].AvgUserRating {
			return rated[a].AvgUserRating > rated[b].AvgUserRating
		}
		if rated[a].TotalSelections != rated[b].TotalSelections {
			return rated[a].TotalSelections > rated[b].TotalSelections
		}
		return rated[a].TemplatePath < rated[b].TemplatePath
	})

	if limit > 0 && len(rated) > limit {
		rated = rated[:limit]
	}
	return rated
}

// storeSchemas maps each store file to the schema it must satisfy.
var storeSchemas = map[string]string{
	historyFile:     "selection_history.schema.json",
	performanceFile: "template_performance.schema.json",
	ratingsFile:     "user_ratings.schema.json",
	sessionsFile:    "feedback_sessions.schema.json",
}

// Verify checks every store file on disk against its schema and returns
// one error per violating file. Missing files and an unresolvable schema
// directory are not errors.
func (s *Store) Verify() []error {
	var errs []error
	for file, schemaName := range storeSchemas {
		path := filepath.Join(s.dataDir, file)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaName))
		if schemaPath == "" {
			continue
		}
		if err := schemas.ValidateJSONFile(schemaPath, path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", file, err))
		}
	}
	return errs
}

// loadFile reads one store file into target. Missing files are normal;
// corrupt files log a warning and leave target empty rather than failing
// the run.
func (s *Store) loadFile(name string, target interface{}) {
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read store file, starting empty",
				zap.String("file", path), zap.Error(err))
		}
		return
	}

	if err := json.Unmarshal(data, target); err != nil {
		s.logger.Warn("store file is corrupt, starting empty",
			zap.String("file", path), zap.Error(err))
	}
}

// saveFile writes one store file, snapshotting the previous content to
// <file>.bak first. Schema violations are logged but do not block the
// write; losing learning data is worse than persisting a row an evolving
// schema does not cover yet.
func (s *Store) saveFile(name, schemaName string, value interface{}) error {
	path := filepath.Join(s.dataDir, name)

	if prev, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", prev, 0o644); err != nil {
			s.logger.Warn("failed to write backup", zap.String("file", path+".bak"), zap.Error(err))
		}
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(filepath.Join("schemas", schemaName)); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			s.logger.Warn("store payload failed schema validation",
				zap.String("file", name), zap.Error(err))
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
