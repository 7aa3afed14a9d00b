package models

// IngestRequest is the caller-supplied payload for the ingestion endpoints.
// At least one of URL / PastedText must be usable; the resolver decides which.
type IngestRequest struct {
	URL        string `json:"url,omitempty" validate:"omitempty,url"`
	PastedText string `json:"pastedText,omitempty"`
	PageTitle  string `json:"pageTitle,omitempty"`
}

// ParseRequest is the payload for the parse-only endpoint.
type ParseRequest struct {
	ExtractedText string `json:"extractedText" validate:"required,min=50"`
	URL           string `json:"url,omitempty" validate:"omitempty,url"`
	PageTitle     string `json:"pageTitle,omitempty"`
}

// ApplicationCreateRequest is the manual-entry payload for creating an
// application without running the pipeline.
type ApplicationCreateRequest struct {
	Company             string   `json:"company" validate:"required,min=1"`
	Title               string   `json:"title" validate:"required,min=1"`
	Location            *string  `json:"location"`
	URL                 *string  `json:"url"`
	JobType             *string  `json:"jobType"`
	WorkMode            *string  `json:"workMode"`
	Seniority           *string  `json:"seniority"`
	SalaryMin           *float64 `json:"salaryMin"`
	SalaryMax           *float64 `json:"salaryMax"`
	SalaryCurrency      *string  `json:"salaryCurrency"`
	SalaryPeriod        *string  `json:"salaryPeriod"`
	DescriptionSummary  *string  `json:"descriptionSummary"`
	KeyRequirements     []string `json:"keyRequirements"`
	KeyResponsibilities []string `json:"keyResponsibilities"`
	Stage               *string  `json:"stage"`
	Notes               *string  `json:"notes"`
}

// ApplicationUpdateRequest carries partial updates; nil fields are untouched.
type ApplicationUpdateRequest struct {
	Company             *string  `json:"company"`
	Title               *string  `json:"title"`
	Location            *string  `json:"location"`
	URL                 *string  `json:"url"`
	JobType             *string  `json:"jobType"`
	WorkMode            *string  `json:"workMode"`
	Seniority           *string  `json:"seniority"`
	SalaryMin           *float64 `json:"salaryMin"`
	SalaryMax           *float64 `json:"salaryMax"`
	SalaryCurrency      *string  `json:"salaryCurrency"`
	SalaryPeriod        *string  `json:"salaryPeriod"`
	DescriptionSummary  *string  `json:"descriptionSummary"`
	KeyRequirements     []string `json:"keyRequirements"`
	KeyResponsibilities []string `json:"keyResponsibilities"`
	Stage               *string  `json:"stage"`
	Notes               *string  `json:"notes"`
}

// ReorderRequest is the board reorder payload: for each stage, the ordered
// list of application ids in that column.
type ReorderRequest struct {
	Columns map[string][]string `json:"columns" validate:"required"`
}

// InboxPostRequest is the browser-extension handoff payload.
type InboxPostRequest struct {
	URL           string `json:"url,omitempty" validate:"omitempty,url"`
	PageTitle     string `json:"pageTitle,omitempty"`
	ExtractedText string `json:"extractedText" validate:"required,min=50"`
}
