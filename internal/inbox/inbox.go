// Package inbox parks extension-submitted postings until the web app picks
// them up by token. Items are short-lived: whichever backend holds them, an
// item expires after the configured TTL and tokens are single-use lookups
// in spirit, not receipts.
package inbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// ErrNotFound is returned when a token is unknown or the item has expired.
var ErrNotFound = fmt.Errorf("inbox item not found")

// Store is the inbox contract shared by the memory and redis backends.
type Store interface {
	// Put stores the item under a fresh token and returns the token.
	Put(ctx context.Context, item *models.InboxItem) (string, error)

	// Get returns the item for a token, or ErrNotFound.
	Get(ctx context.Context, token string) (*models.InboxItem, error)

	// Ping reports backend availability.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// NewStore builds the configured inbox backend. An unknown backend name is
// rejected rather than silently falling back.
func NewStore(cfg *config.Config) (Store, error) {
	switch cfg.Inbox.Backend {
	case "memory", "":
		return NewMemoryInbox(cfg), nil
	case "redis":
		return NewRedisInbox(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported inbox backend: %s", cfg.Inbox.Backend)
	}
}

func newToken() string {
	return uuid.New().String()
}
