package feedback

import (
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/template-pilot/internal/types"
)

// scriptedPrompter feeds canned answers to the collection flow.
type scriptedPrompter struct {
	selects []string
	inputs  []string
}

func (p *scriptedPrompter) SelectOne(label string, items []string) (string, error) {
	next := p.selects[0]
	p.selects = p.selects[1:]
	return next, nil
}

func (p *scriptedPrompter) Input(label string, validate promptui.ValidateFunc) (string, error) {
	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	if validate != nil {
		if err := validate(next); err != nil {
			return "", err
		}
	}
	return next, nil
}

func testCollector(t *testing.T, prompt prompter) (*Collector, *Store) {
	t.Helper()
	store := testStore(t, t.TempDir())
	collector := NewCollector(store, nil)
	collector.prompt = prompt
	return collector, store
}

func TestCollect_FullFeedback(t *testing.T) {
	prompt := &scriptedPrompter{
		// Rate/skip choice, then the four category prompts.
		selects: []string{"Rate it", "4", skipChoice, skipChoice, "5"},
		inputs:  []string{"4.5", "solid match"},
	}
	collector, store := testCollector(t, prompt)
	job := testJob("Senior Product Analyst")

	require.NoError(t, collector.Collect(job, testTemplate, testTemplate))

	require.Len(t, store.ratings, 1)
	rating := store.ratings[0]
	assert.Equal(t, 4.5, rating.Rating)
	assert.Equal(t, "solid match", rating.FeedbackText)
	assert.Equal(t, map[string]float64{
		types.CategoryRoleFit:   4,
		types.CategoryRelevance: 5,
	}, rating.Categories)

	require.Len(t, store.sessions, 1)
	assert.True(t, store.sessions[0].FeedbackCollected)
	assert.Equal(t, testTemplate, store.sessions[0].OriginalTemplate)
	assert.Equal(t, testTemplate, store.sessions[0].SelectedTemplate)
}

func TestCollect_SkipRecordsSessionWithoutRating(t *testing.T) {
	prompt := &scriptedPrompter{selects: []string{skipChoice}}
	collector, store := testCollector(t, prompt)

	require.NoError(t, collector.Collect(testJob("Product Analyst"), "", testTemplate))

	assert.Empty(t, store.ratings)
	require.Len(t, store.sessions, 1)
	assert.False(t, store.sessions[0].FeedbackCollected)
}

func TestCollect_ThrottledJobDoesNothing(t *testing.T) {
	collector, store := testCollector(t, &scriptedPrompter{})
	job := testJob("Product Analyst")
	require.NoError(t, store.RecordSession(store.NewSession(job, "", testTemplate)))

	require.NoError(t, collector.Collect(job, "", testTemplate))

	assert.Len(t, store.sessions, 1)
	assert.Empty(t, store.ratings)
}

func TestCollect_InvalidOverallRatingAbortsToSkippedSession(t *testing.T) {
	prompt := &scriptedPrompter{
		selects: []string{"Rate it"},
		inputs:  []string{"9"},
	}
	collector, store := testCollector(t, prompt)

	require.NoError(t, collector.Collect(testJob("Product Analyst"), "", testTemplate))

	assert.Empty(t, store.ratings)
	require.Len(t, store.sessions, 1)
	assert.False(t, store.sessions[0].FeedbackCollected)
}
