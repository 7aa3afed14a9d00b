package ingest

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// InputMode says which input the pipeline will consume.
type InputMode string

const (
	ModePaste InputMode = "paste"
	ModeURL   InputMode = "url"
)

// ResolvedInput is the resolver's decision for one request.
type ResolvedInput struct {
	Mode InputMode
	URL  string
	Text string
}

// ResolveInput decides between pasted text and a URL. Pasted text, when
// present and at least minPasted characters long, always wins: it avoids
// burning a fetch and a paid parse call when the caller already has the text.
func ResolveInput(req *models.IngestRequest, minPasted int) (*ResolvedInput, error) {
	pasted := strings.TrimSpace(req.PastedText)
	if len(pasted) >= minPasted {
		return &ResolvedInput{Mode: ModePaste, Text: pasted, URL: strings.TrimSpace(req.URL)}, nil
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, NewStageError(StepInput, http.StatusBadRequest,
				fmt.Errorf("invalid url: %q", rawURL))
		}
		return &ResolvedInput{Mode: ModeURL, URL: rawURL}, nil
	}

	if pasted != "" {
		return nil, NewStageError(StepInput, http.StatusBadRequest,
			fmt.Errorf("pasted text too short (%d chars, need at least %d)", len(pasted), minPasted))
	}

	return nil, NewStageError(StepInput, http.StatusBadRequest,
		fmt.Errorf("provide a job posting url or pasted description"))
}
