package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/jonathan/template-pilot/internal/types"
)

const skipChoice = "Skip"

// prompter abstracts the interactive prompts so the collection flow can be
// tested without a terminal.
type prompter interface {
	// SelectOne shows a pick list and returns the chosen item.
	SelectOne(label string, items []string) (string, error)
	// Input reads a line, re-prompting until validate accepts it.
	Input(label string, validate promptui.ValidateFunc) (string, error)
}

type terminalPrompter struct{}

func (terminalPrompter) SelectOne(label string, items []string) (string, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
	}
	_, result, err := sel.Run()
	return result, err
}

func (terminalPrompter) Input(label string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
	}
	return prompt.Run()
}

// Collector runs the interactive post-selection feedback flow and records
// its results through the Store.
type Collector struct {
	store  *Store
	logger *zap.Logger
	prompt prompter
}

// NewCollector returns a Collector bound to a store, prompting on the
// terminal.
func NewCollector(store *Store, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		store:  store,
		logger: logger,
		prompt: terminalPrompter{},
	}
}

// ratingCategories in prompt order. Each is optional and individually
// skippable.
var ratingCategories = []struct {
	key   string
	label string
}{
	{types.CategoryRoleFit, "Role fit"},
	{types.CategorySkillsMatch, "Skills match"},
	{types.CategoryContentQuality, "Content quality"},
	{types.CategoryRelevance, "Relevance"},
}

// Collect prompts the user to rate the selected template, respecting the
// store's throttling. A session is recorded for every prompt attempt,
// collected or skipped; a skipped session never produces a rating.
func (c *Collector) Collect(job *types.JobRecord, originalTemplate, selectedTemplate string) error {
	if !c.store.ShouldPrompt(job.JobID) {
		c.logger.Debug("feedback prompt throttled", zap.String("job_id", job.JobID))
		return nil
	}

	session := c.store.NewSession(job, originalTemplate, selectedTemplate)

	choice, err := c.prompt.SelectOne(
		fmt.Sprintf("Rate the template selected for %q?", job.Title),
		[]string{"Rate it", skipChoice},
	)
	if err != nil || choice == skipChoice {
		session.FeedbackCollected = false
		return c.store.RecordSession(session)
	}

	overall, err := c.overallRating()
	if err != nil {
		session.FeedbackCollected = false
		return c.store.RecordSession(session)
	}

	categories := c.categoryRatings()

	comment, err := c.prompt.Input("Any comments (optional)", nil)
	if err != nil {
		comment = ""
	}

	rating := types.TemplateRating{
		TemplatePath: selectedTemplate,
		JobID:        job.JobID,
		Rating:       overall,
		FeedbackText: strings.TrimSpace(comment),
		Categories:   categories,
	}
	if err := c.store.AddRating(rating); err != nil {
		return err
	}

	session.FeedbackCollected = true
	return c.store.RecordSession(session)
}

// overallRating asks for the mandatory 1-5 rating.
func (c *Collector) overallRating() (float64, error) {
	raw, err := c.prompt.Input("Overall rating (1-5)", func(input string) error {
		value, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil {
			return fmt.Errorf("enter a number between 1 and 5")
		}
		if value < 1 || value > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

// categoryRatings asks for each optional sub-rating. A prompt error or an
// explicit skip leaves that category out.
func (c *Collector) categoryRatings() map[string]float64 {
	items := []string{skipChoice, "1", "2", "3", "4", "5"}

	ratings := map[string]float64{}
	for _, category := range ratingCategories {
		choice, err := c.prompt.SelectOne(category.label, items)
		if err != nil || choice == skipChoice {
			continue
		}
		if value, err := strconv.ParseFloat(choice, 64); err == nil {
			ratings[category.key] = value
		}
	}

	if len(ratings) == 0 {
		return nil
	}
	return ratings
}
