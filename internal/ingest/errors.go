package ingest

import (
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/stage"
)

// The error taxonomy lives in the stage package so the fetch and extract
// subpackages can construct tagged failures without importing the pipeline.
// These aliases keep the pipeline's call sites on the shorter names.
type (
	Step       = stage.Step
	StageError = stage.Error
)

const (
	StepInput   = stage.StepInput
	StepFetch   = stage.StepFetch
	StepExtract = stage.StepExtract
	StepAI      = stage.StepAI
	StepPersist = stage.StepPersist
	StepServer  = stage.StepServer
)

// NewStageError wraps an error with its originating stage.
func NewStageError(step Step, status int, err error) *StageError {
	return stage.New(step, status, err)
}

// AsStageError extracts a StageError from an error chain; unknown errors are
// reported as server failures so the host always gets a tagged result.
func AsStageError(err error) *StageError {
	return stage.As(err)
}
