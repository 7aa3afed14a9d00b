package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// Manager owns the configured LLM provider and tracks its health.
type Manager struct {
	provider Provider
	config   *config.Config
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Start initializes the provider and runs an initial health check. A failed
// health check is logged but does not prevent startup; parse calls will fail
// until the provider recovers.
func (m *Manager) Start(ctx context.Context) error {
	factory := NewFactory(m.config)

	provider, err := factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	m.mu.Lock()
	m.provider = provider
	m.mu.Unlock()

	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := provider.IsHealthy(healthCtx); err != nil {
		m.logger.Warn("LLM provider health check failed at startup", map[string]interface{}{
			"provider": provider.GetProviderName(),
			"error":    err.Error(),
		})
		m.setHealthy(false)
	} else {
		m.setHealthy(true)
		m.logger.Info("LLM provider started", map[string]interface{}{
			"provider": provider.GetProviderName(),
		})
	}

	return nil
}

// Stop shuts down the manager.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = nil
	m.healthy = false
	return nil
}

// ParseJobFields delegates to the active provider.
func (m *Manager) ParseJobFields(ctx context.Context, text string, hints models.ParseHints) (*models.ParsedJobFields, error) {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return nil, fmt.Errorf("LLM provider not started")
	}

	fields, err := provider.ParseJobFields(ctx, text, hints)
	if err != nil {
		m.setHealthy(false)
		return nil, err
	}

	m.setHealthy(true)
	return fields, nil
}

// IsHealthy reports the last observed provider health.
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy
}

// CheckHealth actively probes the provider and updates the health flag.
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not started")
	}

	err := provider.IsHealthy(ctx)
	m.setHealthy(err == nil)
	return err
}

// GetProviderName returns the active provider's name.
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.provider == nil {
		return "none"
	}
	return m.provider.GetProviderName()
}

func (m *Manager) setHealthy(v bool) {
	m.mu.Lock()
	m.healthy = v
	m.mu.Unlock()
}
