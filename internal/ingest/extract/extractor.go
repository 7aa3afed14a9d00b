package extract

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/stage"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
	"github.com/Ahlonzo124/job-application-tracker/pkg/utils"
)

// strategy is one way of pulling readable text out of a parsed page.
// Strategies are tried in order; the first whose output clears the quality
// threshold wins.
type strategy struct {
	name models.SourceStrategy
	run  func(doc *goquery.Document) (string, bool)
}

// Extractor reduces raw HTML to best-effort readable posting text.
type Extractor struct {
	cfg        *config.Config
	strategies []strategy
	logger     logging.Logger
}

// NewExtractor creates an extractor with the layered strategy list:
// reader-mode scoring first, then the selector fallback (which itself falls
// back to whole-document text).
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		cfg: cfg,
		strategies: []strategy{
			{name: models.SourceReaderMode, run: readerMode},
			{name: models.SourceSelectorFallback, run: func(doc *goquery.Document) (string, bool) {
				t := selectorFallback(doc)
				return t, t != ""
			}},
		},
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractFromHTML runs the strategy chain over the page HTML. Output that
// looks like a login wall is reported as blocked with a short preview
// instead of being forwarded downstream; output under the quality threshold
// is a hard ExtractError, never a degraded success.
func (e *Extractor) ExtractFromHTML(html, pageURL string) (*models.ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, stage.New(stage.StepExtract, http.StatusBadRequest,
			fmt.Errorf("failed to parse HTML: %w", err))
	}

	title := titleGuess(doc)
	stripJunk(doc)

	var text string
	source := models.SourceSelectorFallback
	for _, s := range e.strategies {
		raw, ok := s.run(doc)
		if !ok {
			continue
		}
		cleaned := CleanText(raw)
		if len(cleaned) >= e.cfg.Extractor.MinTextLength {
			text = cleaned
			source = s.name
			break
		}
		// Keep the longest sub-threshold candidate for the blocked preview
		if len(cleaned) > len(text) {
			text = cleaned
			source = s.name
		}
	}

	if DetectLoginWall(text, title) {
		e.logger.Info("Login wall detected", map[string]interface{}{
			"url":   pageURL,
			"title": title,
		})
		return &models.ExtractionResult{
			SourceStrategy: models.SourceBlocked,
			URL:            pageURL,
			TitleGuess:     title,
			Text:           utils.Truncate(text, e.cfg.Extractor.PreviewLength),
			Blocked:        true,
			Reason:         "This page appears to require signing in.",
			Suggestion:     "Open the posting in your browser and use Paste Job Description instead.",
		}, nil
	}

	if len(text) < e.cfg.Extractor.MinTextLength {
		return nil, stage.New(stage.StepExtract, http.StatusBadRequest,
			fmt.Errorf("could not extract enough readable text from this page (possibly blocked or rendered by JavaScript); try the Paste Job Description fallback"))
	}

	e.logger.Debug("Text extracted", map[string]interface{}{
		"url":    pageURL,
		"source": string(source),
		"chars":  len(text),
	})

	return &models.ExtractionResult{
		SourceStrategy: source,
		URL:            pageURL,
		TitleGuess:     title,
		Text:           text,
	}, nil
}

// ExtractFromPaste wraps caller-pasted text in an ExtractionResult. Paste
// mode skips the URL quality threshold; the resolver already enforced the
// paste minimum.
func (e *Extractor) ExtractFromPaste(pasted, pageTitle string) *models.ExtractionResult {
	return &models.ExtractionResult{
		SourceStrategy: models.SourcePaste,
		TitleGuess:     pageTitle,
		Text:           CleanText(pasted),
	}
}
