package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

const minPasted = 30

func TestResolveInputPasteWins(t *testing.T) {
	pasted := strings.Repeat("senior engineer role ", 5)
	req := &models.IngestRequest{
		URL:        "https://example.com/jobs/1",
		PastedText: pasted,
	}

	got, err := ResolveInput(req, minPasted)
	require.NoError(t, err)
	assert.Equal(t, ModePaste, got.Mode)
	assert.Equal(t, strings.TrimSpace(pasted), got.Text)
	assert.Equal(t, "https://example.com/jobs/1", got.URL, "url is kept for bestUrl")
}

func TestResolveInputURLMode(t *testing.T) {
	req := &models.IngestRequest{URL: " https://example.com/jobs/1 "}

	got, err := ResolveInput(req, minPasted)
	require.NoError(t, err)
	assert.Equal(t, ModeURL, got.Mode)
	assert.Equal(t, "https://example.com/jobs/1", got.URL)
}

func TestResolveInputShortPasteFallsThroughToURL(t *testing.T) {
	req := &models.IngestRequest{
		URL:        "https://example.com/jobs/1",
		PastedText: "too short",
	}

	got, err := ResolveInput(req, minPasted)
	require.NoError(t, err)
	assert.Equal(t, ModeURL, got.Mode)
}

func TestResolveInputErrors(t *testing.T) {
	tests := []struct {
		name string
		req  *models.IngestRequest
	}{
		{"empty request", &models.IngestRequest{}},
		{"invalid url", &models.IngestRequest{URL: "notaurl"}},
		{"short paste without url", &models.IngestRequest{PastedText: "too short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveInput(tt.req, minPasted)
			require.Error(t, err)

			se := AsStageError(err)
			assert.Equal(t, StepInput, se.Step)
			assert.Equal(t, 400, se.Status)
		})
	}
}
