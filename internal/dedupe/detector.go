// Package dedupe decides whether an incoming posting already exists in the
// owner's tracker. URL identity wins over field identity: a normalized URL
// match short-circuits the field comparison entirely.
package dedupe

import (
	"context"
	"strings"

	"github.com/Ahlonzo124/job-application-tracker/internal/store"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// Match reasons reported to the caller.
const (
	ReasonURLMatch    = "URL_MATCH"
	ReasonFieldsMatch = "FIELDS_MATCH"
)

// Result describes the outcome of a duplicate check.
type Result struct {
	Duplicate bool
	Reason    string
	Existing  *models.Application
}

// Detector runs duplicate checks against the application store.
type Detector struct {
	store store.ApplicationStore
}

// NewDetector returns a detector backed by the given store.
func NewDetector(s store.ApplicationStore) *Detector {
	return &Detector{store: s}
}

// Detect checks the owner's applications for an existing record matching the
// incoming posting. The normalized URL is compared first; when there is no
// URL or no URL hit, company and title (plus location when known) decide.
// Both company and title must be present for a field match to be attempted.
func (d *Detector) Detect(ctx context.Context, ownerID, normalizedURL string, company, title, location *string) (*Result, error) {
	if normalizedURL != "" {
		existing, err := d.store.FindByURL(ctx, ownerID, normalizedURL)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &Result{Duplicate: true, Reason: ReasonURLMatch, Existing: existing}, nil
		}
	}

	if !usable(company) || !usable(title) {
		return &Result{}, nil
	}

	existing, err := d.store.FindByFields(ctx, ownerID, *company, *title, location)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &Result{Duplicate: true, Reason: ReasonFieldsMatch, Existing: existing}, nil
	}
	return &Result{}, nil
}

func usable(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
