// Package store persists applications and enforces owner scoping on every
// query. All lookups take the owner id first so a record can never leak
// across accounts.
package store

import (
	"context"
	"fmt"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// ErrNotFound is returned when an application is missing or does not belong
// to the owner.
var ErrNotFound = fmt.Errorf("application not found")

// ApplicationStore is the persistence contract used by the pipeline, the
// duplicate detector and the HTTP handlers.
type ApplicationStore interface {
	// Create inserts a new application and fills server-assigned fields
	// (id, timestamps).
	Create(ctx context.Context, app *models.Application) error

	// FindByURL returns the owner's application with the given normalized
	// URL, or nil when none exists.
	FindByURL(ctx context.Context, ownerID, normalizedURL string) (*models.Application, error)

	// FindByFields returns the owner's application matching company and
	// title (and location when non-nil), or nil when none exists.
	FindByFields(ctx context.Context, ownerID, company, title string, location *string) (*models.Application, error)

	// List returns all of the owner's applications ordered for board
	// rendering (stage, then sort order, then recency).
	List(ctx context.Context, ownerID string) ([]models.Application, error)

	// Get returns a single application by id, validating ownership.
	Get(ctx context.Context, ownerID, id string) (*models.Application, error)

	// Update applies a partial update and returns the updated record.
	Update(ctx context.Context, ownerID, id string, patch *models.ApplicationUpdateRequest) (*models.Application, error)

	// Delete removes an application, validating ownership.
	Delete(ctx context.Context, ownerID, id string) error

	// Reorder rewrites stage and sort order for the given columns in a
	// single transaction. Keys are stage names, values are application ids
	// in display order.
	Reorder(ctx context.Context, ownerID string, columns map[string][]string) error
}
