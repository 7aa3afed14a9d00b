package ingest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/dedupe"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/extract"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/fetch"
	"github.com/Ahlonzo124/job-application-tracker/internal/llm"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
	"github.com/Ahlonzo124/job-application-tracker/pkg/utils"
)

// Parser is the structured-parse dependency. *llm.Manager satisfies it.
type Parser interface {
	ParseJobFields(ctx context.Context, text string, hints models.ParseHints) (*models.ParsedJobFields, error)
}

var _ Parser = (*llm.Manager)(nil)

// Pipeline runs a posting through fetch, extraction, structured parse,
// duplicate detection and persistence. Each stage failure is a StageError so
// callers can report which stage stopped the run.
type Pipeline struct {
	cfg       *config.Config
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	parser    Parser
	detector  *dedupe.Detector
	store     store.ApplicationStore
	logger    logging.Logger
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(cfg *config.Config, fetcher *fetch.Fetcher, extractor *extract.Extractor, parser Parser, appStore store.ApplicationStore) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		parser:    parser,
		detector:  dedupe.NewDetector(appStore),
		store:     appStore,
		logger:    logging.GetGlobalLogger(),
	}
}

// Extract resolves the request input and produces extracted text. In URL
// mode a login-walled page is returned as a blocked result, not an error;
// the caller decides how to surface it.
func (p *Pipeline) Extract(ctx context.Context, req *models.IngestRequest) (*models.ExtractionResult, error) {
	input, err := ResolveInput(req, p.cfg.Extractor.MinPastedLength)
	if err != nil {
		return nil, err
	}

	if input.Mode == ModePaste {
		return p.extractor.ExtractFromPaste(input.Text, req.PageTitle), nil
	}

	page, err := p.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		return nil, err
	}
	return p.extractor.ExtractFromHTML(page.HTML, input.URL)
}

// Parse sends extracted text to the structured parser.
func (p *Pipeline) Parse(ctx context.Context, text string, hints models.ParseHints) (*models.ParsedJobFields, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.LLM.Timeout)
	defer cancel()

	fields, err := p.parser.ParseJobFields(ctx, text, hints)
	if err != nil {
		return nil, NewStageError(StepAI, http.StatusBadGateway,
			fmt.Errorf("structured parse failed: %w", err))
	}
	return fields, nil
}

// Run executes extract then parse without persisting. A blocked page stops
// the orchestrated run: unlike the extract-only endpoint there is nothing
// useful to do with a login-wall preview here.
func (p *Pipeline) Run(ctx context.Context, req *models.IngestRequest) (*models.IngestResponse, error) {
	started := time.Now()

	extraction, err := p.Extract(ctx, req)
	if err != nil {
		return nil, err
	}

	if extraction.Blocked {
		se := NewStageError(StepExtract, http.StatusUnprocessableEntity,
			fmt.Errorf("%s %s", extraction.Reason, extraction.Suggestion))
		se.Extract = extraction
		return nil, se
	}

	bestURL := bestURLFor(req, extraction)

	fields, err := p.Parse(ctx, extraction.Text, models.ParseHints{
		URL:       bestURL,
		PageTitle: extraction.TitleGuess,
	})
	if err != nil {
		if se := AsStageError(err); se.Extract == nil {
			se.Extract = extraction
			return nil, se
		}
		return nil, err
	}

	p.logger.Info("Pipeline run completed", map[string]interface{}{
		"source":          string(extraction.SourceStrategy),
		"best_url":        bestURL,
		"processing_time": time.Since(started).String(),
	})

	return &models.IngestResponse{
		OK:      true,
		Extract: extraction,
		AI:      fields,
		BestURL: bestURL,
	}, nil
}

// RunAndSave executes the full pipeline and persists the result for the
// owner. A duplicate returns ok with the pre-existing application instead of
// creating a second record.
func (p *Pipeline) RunAndSave(ctx context.Context, ownerID string, req *models.IngestRequest) (*models.SaveResponse, error) {
	run, err := p.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	ai := run.AI

	// Storage requires company and title; the parser may return nulls.
	company := derefOr(ai.Company, "Unknown Company")
	title := derefOr(ai.Title, "Unknown Title")
	location := utils.PtrStringOrNil(ai.Location)

	rawURL := run.BestURL
	if ai.URL != nil && strings.TrimSpace(*ai.URL) != "" {
		rawURL = *ai.URL
	}
	finalURL := utils.NormalizeURL(rawURL)

	match, err := p.detector.Detect(ctx, ownerID, finalURL, &company, &title, location)
	if err != nil {
		return nil, NewStageError(StepPersist, http.StatusInternalServerError,
			fmt.Errorf("duplicate check failed: %w", err))
	}
	if match.Duplicate {
		return &models.SaveResponse{
			OK:          true,
			Duplicate:   true,
			Reason:      match.Reason,
			Application: match.Existing,
		}, nil
	}

	app := &models.Application{
		OwnerID:             ownerID,
		Company:             company,
		Title:               title,
		Location:            location,
		URL:                 utils.StringOrNil(finalURL),
		JobType:             utils.PtrStringOrNil(ai.JobType),
		WorkMode:            utils.PtrStringOrNil(ai.WorkMode),
		Seniority:           utils.PtrStringOrNil(ai.Seniority),
		SalaryMin:           utils.FiniteOrNil(ai.SalaryMin),
		SalaryMax:           utils.FiniteOrNil(ai.SalaryMax),
		SalaryCurrency:      utils.PtrStringOrNil(ai.SalaryCurrency),
		SalaryPeriod:        utils.PtrStringOrNil(ai.SalaryPeriod),
		DescriptionSummary:  utils.PtrStringOrNil(ai.DescriptionSummary),
		KeyRequirements:     utils.CleanStringSlice(ai.KeyRequirements),
		KeyResponsibilities: utils.CleanStringSlice(ai.KeyResponsibilities),
		Stage:               models.StageApplied,
		AppliedDate:         time.Now().UTC(),
	}

	if err := p.store.Create(ctx, app); err != nil {
		return nil, NewStageError(StepPersist, http.StatusInternalServerError,
			fmt.Errorf("save application: %w", err))
	}

	return &models.SaveResponse{OK: true, Application: app}, nil
}

// bestURLFor prefers the caller's URL over anything the extractor found.
func bestURLFor(req *models.IngestRequest, extraction *models.ExtractionResult) string {
	if u := strings.TrimSpace(req.URL); u != "" {
		return u
	}
	return strings.TrimSpace(extraction.URL)
}

func derefOr(s *string, fallback string) string {
	if s != nil && strings.TrimSpace(*s) != "" {
		return strings.TrimSpace(*s)
	}
	return fallback
}
