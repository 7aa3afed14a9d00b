package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPayload = `{
	"company": "Acme Corp",
	"title": "Senior Engineer",
	"location": null,
	"jobType": "Full-time",
	"workMode": "Remote",
	"salaryMin": 90000,
	"salaryMax": 120000,
	"salaryCurrency": "USD",
	"salaryPeriod": "year",
	"seniority": "senior",
	"descriptionSummary": "Build ingestion pipelines.",
	"keyRequirements": ["Go", " Postgres "],
	"keyResponsibilities": [],
	"confidence": {"company": 0.95, "title": 0.9, "location": 0.1, "salary": 0.8}
}`

func TestDecodeFieldsJSON(t *testing.T) {
	fields, err := decodeFieldsJSON(validPayload)
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", *fields.Company)
	assert.Nil(t, fields.Location)
	assert.Equal(t, []string{"Go", "Postgres"}, fields.KeyRequirements, "list entries are trimmed")
	assert.Equal(t, 0.95, fields.Confidence.Company)
}

func TestDecodeFieldsJSONStripsFences(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	fields, err := decodeFieldsJSON(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", *fields.Title)

	bare := "```\n" + validPayload + "\n```"
	fields, err = decodeFieldsJSON(bare)
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", *fields.Title)
}

func TestDecodeFieldsJSONRejectsUnknownKeys(t *testing.T) {
	_, err := decodeFieldsJSON(`{"company": "Acme", "surprise": true}`)
	assert.Error(t, err, "the schema is closed")
}

func TestDecodeFieldsJSONRequiresConfidence(t *testing.T) {
	_, err := decodeFieldsJSON(`{"company": "Acme"}`)
	assert.Error(t, err)
}

func TestDecodeFieldsJSONRejectsNonJSON(t *testing.T) {
	_, err := decodeFieldsJSON("Sorry, I cannot parse this posting.")
	assert.Error(t, err)
}
