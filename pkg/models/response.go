package models

import "time"

// ExtractResponse is the extract-only endpoint's success payload.
type ExtractResponse struct {
	OK      bool              `json:"ok"`
	Extract *ExtractionResult `json:"extract,omitempty"`
}

// ParseResponse is the parse-only endpoint's success payload.
type ParseResponse struct {
	OK   bool             `json:"ok"`
	Data *ParsedJobFields `json:"data,omitempty"`
}

// IngestResponse is the aggregate result of an extract+parse pipeline run.
type IngestResponse struct {
	OK      bool              `json:"ok"`
	Extract *ExtractionResult `json:"extract,omitempty"`
	AI      *ParsedJobFields  `json:"ai,omitempty"`
	BestURL string            `json:"bestUrl,omitempty"`
}

// SaveResponse is the result of a full pipeline run ending in persistence.
// On a duplicate, Application is the pre-existing record and Reason explains
// which check matched.
type SaveResponse struct {
	OK          bool         `json:"ok"`
	Duplicate   bool         `json:"duplicate"`
	Reason      string       `json:"reason,omitempty"`
	Application *Application `json:"application,omitempty"`
}

// PipelineErrorResponse is the stage-tagged failure shape: Step identifies
// which pipeline stage stopped the run so the host can surface specific
// guidance.
type PipelineErrorResponse struct {
	OK      bool              `json:"ok"`
	Step    string            `json:"step"`
	Status  int               `json:"status,omitempty"`
	Error   string            `json:"error"`
	Extract *ExtractionResult `json:"extract,omitempty"`
}

// ErrorResponse is the generic error shape for non-pipeline endpoints.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// InboxPostResponse acknowledges an extension submission with its pickup token.
type InboxPostResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

// InboxGetResponse returns a parked extension submission.
type InboxGetResponse struct {
	OK   bool       `json:"ok"`
	Item *InboxItem `json:"item"`
}
