package llm

import (
	"context"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// Provider defines the interface for LLM providers that turn posting text
// into structured job fields.
type Provider interface {
	// ParseJobFields extracts structured job fields from posting text.
	// Hints carry optional page context that improves field accuracy.
	ParseJobFields(ctx context.Context, text string, hints models.ParseHints) (*models.ParsedJobFields, error)

	// IsHealthy checks if the provider is available and properly configured.
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider.
	GetProviderName() string
}
