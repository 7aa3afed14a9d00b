package models

import (
	"fmt"

	"github.com/Ahlonzo124/job-application-tracker/pkg/utils"
)

// SourceStrategy identifies which extraction strategy produced the text
// forwarded to the structured parser.
type SourceStrategy string

const (
	SourcePaste            SourceStrategy = "paste"
	SourceReaderMode       SourceStrategy = "reader_mode"
	SourceSelectorFallback SourceStrategy = "selector_fallback"
	SourceBlocked          SourceStrategy = "blocked"
)

// ExtractionResult is the output of the text extractor for a single posting.
type ExtractionResult struct {
	SourceStrategy SourceStrategy `json:"source"`
	URL            string         `json:"url,omitempty"`
	TitleGuess     string         `json:"title_guess,omitempty"`
	Text           string         `json:"extracted_text"`
	Blocked        bool           `json:"blocked,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Suggestion     string         `json:"suggestion,omitempty"`
}

// Confidence carries the parser's per-field confidence scores in [0,1].
// All four keys are required by the parse schema.
type Confidence struct {
	Company  float64 `json:"company"`
	Title    float64 `json:"title"`
	Location float64 `json:"location"`
	Salary   float64 `json:"salary"`
}

// ParsedJobFields is the closed-schema output of the structured parser.
// Every field is present on a successful parse; unknown values are null.
type ParsedJobFields struct {
	Company             *string     `json:"company"`
	Title               *string     `json:"title"`
	Location            *string     `json:"location"`
	URL                 *string     `json:"url,omitempty"`
	JobType             *string     `json:"jobType"`
	WorkMode            *string     `json:"workMode"`
	SalaryMin           *float64    `json:"salaryMin"`
	SalaryMax           *float64    `json:"salaryMax"`
	SalaryCurrency      *string     `json:"salaryCurrency"`
	SalaryPeriod        *string     `json:"salaryPeriod"`
	Seniority           *string     `json:"seniority"`
	DescriptionSummary  *string     `json:"descriptionSummary"`
	KeyRequirements     []string    `json:"keyRequirements"`
	KeyResponsibilities []string    `json:"keyResponsibilities"`
	Confidence          *Confidence `json:"confidence"`
}

// ParseHints carries optional page context forwarded to the parser prompt.
type ParseHints struct {
	URL       string
	PageTitle string
}

// Normalize enforces the closed parse schema on decoded fields: confidence
// scores are clamped to [0,1], list fields are never nil, and salary bounds
// must be finite. Returns an error when the confidence block is missing.
func (f *ParsedJobFields) Normalize() error {
	if f.Confidence == nil {
		return fmt.Errorf("parsed fields missing confidence block")
	}
	f.Confidence.Company = clamp01(f.Confidence.Company)
	f.Confidence.Title = clamp01(f.Confidence.Title)
	f.Confidence.Location = clamp01(f.Confidence.Location)
	f.Confidence.Salary = clamp01(f.Confidence.Salary)

	f.KeyRequirements = utils.CleanStringSlice(f.KeyRequirements)
	f.KeyResponsibilities = utils.CleanStringSlice(f.KeyResponsibilities)
	if f.KeyRequirements == nil {
		f.KeyRequirements = []string{}
	}
	if f.KeyResponsibilities == nil {
		f.KeyResponsibilities = []string{}
	}

	f.SalaryMin = utils.FiniteOrNil(f.SalaryMin)
	f.SalaryMax = utils.FiniteOrNil(f.SalaryMax)
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
