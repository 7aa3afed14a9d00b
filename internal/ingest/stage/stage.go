package stage

import (
	"errors"
	"fmt"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// Step identifies the pipeline stage a failure came from. The host uses it
// to render stage-specific guidance ("try Paste Job Description instead").
type Step string

const (
	StepInput   Step = "input"
	StepFetch   Step = "fetch"
	StepExtract Step = "extract"
	StepAI      Step = "ai"
	StepPersist Step = "persist"
	StepServer  Step = "server"
)

// Error is the typed failure every pipeline stage short-circuits with.
// Status is the HTTP status the host should answer with.
type Error struct {
	Step   Step
	Status int
	Err    error

	// Extract carries the partial extraction result, when one exists, so a
	// failed run can still show the caller what was read from the page.
	Extract *models.ExtractionResult
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps an error with its originating stage.
func New(step Step, status int, err error) *Error {
	return &Error{Step: step, Status: status, Err: err}
}

// As extracts a stage error from an error chain; unknown errors are
// reported as server failures so the host always gets a tagged result.
func As(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Step: StepServer, Status: 500, Err: err}
}
