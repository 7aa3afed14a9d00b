package ingest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/extract"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

type fakeParser struct {
	fields *models.ParsedJobFields
	err    error

	gotText  string
	gotHints models.ParseHints
}

func (f *fakeParser) ParseJobFields(_ context.Context, text string, hints models.ParseHints) (*models.ParsedJobFields, error) {
	f.gotText = text
	f.gotHints = hints
	return f.fields, f.err
}

func strPtr(s string) *string { return &s }

func pipelineConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.MinTextLength = 200
	cfg.Extractor.MinPastedLength = 30
	cfg.Extractor.PreviewLength = 400
	cfg.LLM.Timeout = time.Minute
	return cfg
}

func parsedFields() *models.ParsedJobFields {
	salMin := 90000.0
	return &models.ParsedJobFields{
		Company:         strPtr("Acme Corp"),
		Title:           strPtr("Senior Engineer"),
		Location:        strPtr("Berlin"),
		SalaryMin:       &salMin,
		KeyRequirements: []string{"Go", "Postgres"},
		Confidence:      &models.Confidence{Company: 0.9, Title: 0.9, Location: 0.8, Salary: 0.7},
	}
}

const pastedPosting = "Acme Corp is hiring a Senior Engineer in Berlin to build ingestion pipelines in Go and Postgres."

func newTestPipeline(parser Parser, s store.ApplicationStore) *Pipeline {
	cfg := pipelineConfig()
	return NewPipeline(cfg, nil, extract.NewExtractor(cfg), parser, s)
}

func TestRunPasteMode(t *testing.T) {
	parser := &fakeParser{fields: parsedFields()}
	p := newTestPipeline(parser, store.NewMemoryStore())

	resp, err := p.Run(context.Background(), &models.IngestRequest{
		URL:        "https://acme.example/jobs/1",
		PastedText: pastedPosting,
		PageTitle:  "Senior Engineer - Acme",
	})
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.Equal(t, models.SourcePaste, resp.Extract.SourceStrategy)
	assert.Equal(t, "https://acme.example/jobs/1", resp.BestURL, "caller url wins in paste mode")
	assert.Equal(t, "Acme Corp", *resp.AI.Company)
	assert.Contains(t, parser.gotText, "Senior Engineer")
	assert.Equal(t, "https://acme.example/jobs/1", parser.gotHints.URL)
}

func TestRunParserFailureTagged(t *testing.T) {
	parser := &fakeParser{err: fmt.Errorf("model unavailable")}
	p := newTestPipeline(parser, store.NewMemoryStore())

	_, err := p.Run(context.Background(), &models.IngestRequest{PastedText: pastedPosting})
	require.Error(t, err)

	se := AsStageError(err)
	assert.Equal(t, StepAI, se.Step)
	assert.Equal(t, 502, se.Status)
	assert.NotNil(t, se.Extract, "failed parse still reports what was extracted")
}

func TestRunAndSaveCreatesApplication(t *testing.T) {
	s := store.NewMemoryStore()
	p := newTestPipeline(&fakeParser{fields: parsedFields()}, s)

	resp, err := p.RunAndSave(context.Background(), "alice", &models.IngestRequest{
		URL:        "https://acme.example/jobs/1?utm_source=linkedin",
		PastedText: pastedPosting,
	})
	require.NoError(t, err)

	assert.True(t, resp.OK)
	assert.False(t, resp.Duplicate)
	require.NotNil(t, resp.Application)

	app := resp.Application
	assert.Equal(t, "alice", app.OwnerID)
	assert.Equal(t, "Acme Corp", app.Company)
	assert.Equal(t, models.StageApplied, app.Stage)
	require.NotNil(t, app.URL)
	assert.Equal(t, "https://acme.example/jobs/1", *app.URL, "tracking params are stripped before storage")
	assert.False(t, app.AppliedDate.IsZero())
}

func TestRunAndSaveDetectsDuplicateURL(t *testing.T) {
	s := store.NewMemoryStore()
	p := newTestPipeline(&fakeParser{fields: parsedFields()}, s)

	first, err := p.RunAndSave(context.Background(), "alice", &models.IngestRequest{
		URL:        "https://acme.example/jobs/1",
		PastedText: pastedPosting,
	})
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	// Same posting with tracking noise on the URL.
	second, err := p.RunAndSave(context.Background(), "alice", &models.IngestRequest{
		URL:        "https://acme.example/jobs/1?utm_campaign=retarget#apply",
		PastedText: pastedPosting,
	})
	require.NoError(t, err)

	assert.True(t, second.OK)
	assert.True(t, second.Duplicate)
	assert.Equal(t, "URL_MATCH", second.Reason)
	assert.Equal(t, first.Application.ID, second.Application.ID)

	apps, err := s.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, apps, 1, "no second record is created")
}

func TestRunAndSaveFieldFallbacks(t *testing.T) {
	fields := parsedFields()
	fields.Company = nil
	fields.Title = strPtr("   ")

	s := store.NewMemoryStore()
	p := newTestPipeline(&fakeParser{fields: fields}, s)

	resp, err := p.RunAndSave(context.Background(), "alice", &models.IngestRequest{
		PastedText: pastedPosting,
	})
	require.NoError(t, err)

	assert.Equal(t, "Unknown Company", resp.Application.Company)
	assert.Equal(t, "Unknown Title", resp.Application.Title)
}

func TestRunAndSaveOwnerScopedDuplicates(t *testing.T) {
	s := store.NewMemoryStore()
	p := newTestPipeline(&fakeParser{fields: parsedFields()}, s)

	req := &models.IngestRequest{
		URL:        "https://acme.example/jobs/1",
		PastedText: pastedPosting,
	}

	first, err := p.RunAndSave(context.Background(), "alice", req)
	require.NoError(t, err)
	second, err := p.RunAndSave(context.Background(), "bob", req)
	require.NoError(t, err)

	assert.False(t, second.Duplicate, "owners track postings independently")
	assert.NotEqual(t, first.Application.ID, second.Application.ID)
}

func TestRunAndSavePrefersParserURL(t *testing.T) {
	fields := parsedFields()
	fields.URL = strPtr("https://careers.acme.example/jobs/canonical")

	s := store.NewMemoryStore()
	p := newTestPipeline(&fakeParser{fields: fields}, s)

	resp, err := p.RunAndSave(context.Background(), "alice", &models.IngestRequest{
		URL:        "https://aggregator.example/view?posting=1",
		PastedText: pastedPosting,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Application.URL)
	assert.True(t, strings.HasPrefix(*resp.Application.URL, "https://careers.acme.example/"))
}
