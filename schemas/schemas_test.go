package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/template-pilot/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"selection_history.schema.json",
	"template_performance.schema.json",
	"user_ratings.schema.json",
	"feedback_sessions.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			err = json.Unmarshal(data, &schemaObj)
			require.NoError(t, err)

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema,
				"schema should declare both type and $schema")
		})
	}
}

func TestSelectionHistorySchema_AcceptsValidEntry(t *testing.T) {
	payload := `[
		{
			"job_id": "job-123",
			"job_title": "Senior Product Analyst",
			"selected_template": "output/Product Analyst - Analytics - Python, SQL/PedroHerrera_PA_ANAL_B2C_2025.docx",
			"auto_selected": true,
			"selection_score": 0.82,
			"user_rating": 4.5,
			"outcome": "success",
			"timestamp": "2025-06-01T12:00:00Z"
		}
	]`

	err := schemas.ValidateBytes("selection_history.schema.json", []byte(payload))
	assert.NoError(t, err)
}

func TestSelectionHistorySchema_RejectsBadOutcome(t *testing.T) {
	payload := `[
		{
			"job_id": "job-123",
			"job_title": "Senior Product Analyst",
			"selected_template": "some/template.docx",
			"auto_selected": false,
			"selection_score": 0.5,
			"outcome": "maybe",
			"timestamp": "2025-06-01T12:00:00Z"
		}
	]`

	err := schemas.ValidateBytes("selection_history.schema.json", []byte(payload))
	require.Error(t, err)

	var ve *schemas.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestTemplatePerformanceSchema_AcceptsAggregate(t *testing.T) {
	payload := `{
		"output/Data Analyst - Analytics - SQL/PedroHerrera_DA_ANAL_B2B_2024.docx": {
			"template_path": "output/Data Analyst - Analytics - SQL/PedroHerrera_DA_ANAL_B2B_2024.docx",
			"total_selections": 5,
			"user_ratings": [4, 5, 4.5],
			"success_rate": 0.8,
			"avg_user_rating": 4.5,
			"role_performance": {"DA": 0.9},
			"last_used": "2025-05-20T09:30:00Z"
		}
	}`

	err := schemas.ValidateBytes("template_performance.schema.json", []byte(payload))
	assert.NoError(t, err)
}

func TestFeedbackSessionsSchema_RejectsMissingSessionID(t *testing.T) {
	payload := `[
		{
			"job_id": "job-9",
			"selected_template": "x.docx",
			"timestamp": "2025-06-01T12:00:00Z",
			"feedback_collected": false
		}
	]`

	err := schemas.ValidateBytes("feedback_sessions.schema.json", []byte(payload))
	assert.Error(t, err)
}
