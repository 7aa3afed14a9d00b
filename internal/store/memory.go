package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

// MemoryStore is an in-memory ApplicationStore used in tests and when no
// database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	apps map[string]*models.Application
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{apps: make(map[string]*models.Application)}
}

func (s *MemoryStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	app.ID = uuid.New().String()
	if app.Stage == "" {
		app.Stage = models.StageApplied
	}
	if app.AppliedDate.IsZero() {
		app.AppliedDate = now
	}
	if app.KeyRequirements == nil {
		app.KeyRequirements = []string{}
	}
	if app.KeyResponsibilities == nil {
		app.KeyResponsibilities = []string{}
	}
	app.CreatedAt = now
	app.UpdatedAt = now

	stored := *app
	s.apps[app.ID] = &stored
	return nil
}

func (s *MemoryStore) FindByURL(_ context.Context, ownerID, normalizedURL string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *models.Application
	for _, a := range s.apps {
		if a.OwnerID != ownerID || a.URL == nil || *a.URL != normalizedURL {
			continue
		}
		if best == nil || a.CreatedAt.After(best.CreatedAt) {
			best = a
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (s *MemoryStore) FindByFields(_ context.Context, ownerID, company, title string, location *string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	company = strings.ToLower(strings.TrimSpace(company))
	title = strings.ToLower(strings.TrimSpace(title))

	var best *models.Application
	for _, a := range s.apps {
		if a.OwnerID != ownerID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(a.Company)) != company ||
			strings.ToLower(strings.TrimSpace(a.Title)) != title {
			continue
		}
		if location != nil && strings.TrimSpace(*location) != "" {
			have := ""
			if a.Location != nil {
				have = *a.Location
			}
			if !strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(*location)) {
				continue
			}
		}
		if best == nil || a.CreatedAt.After(best.CreatedAt) {
			best = a
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, ownerID string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]models.Application, 0)
	for _, a := range s.apps {
		if a.OwnerID == ownerID {
			apps = append(apps, *a)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].Stage != apps[j].Stage {
			return apps[i].Stage < apps[j].Stage
		}
		if apps[i].SortOrder != apps[j].SortOrder {
			return apps[i].SortOrder < apps[j].SortOrder
		}
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (s *MemoryStore) Get(_ context.Context, ownerID, id string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.apps[id]
	if !ok || a.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *MemoryStore) Update(_ context.Context, ownerID, id string, patch *models.ApplicationUpdateRequest) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.apps[id]
	if !ok || a.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	if patch.Company != nil {
		a.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Title != nil {
		a.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Location != nil {
		a.Location = patch.Location
	}
	if patch.URL != nil {
		a.URL = patch.URL
	}
	if patch.JobType != nil {
		a.JobType = patch.JobType
	}
	if patch.WorkMode != nil {
		a.WorkMode = patch.WorkMode
	}
	if patch.Seniority != nil {
		a.Seniority = patch.Seniority
	}
	if patch.SalaryMin != nil {
		a.SalaryMin = patch.SalaryMin
	}
	if patch.SalaryMax != nil {
		a.SalaryMax = patch.SalaryMax
	}
	if patch.SalaryCurrency != nil {
		a.SalaryCurrency = patch.SalaryCurrency
	}
	if patch.SalaryPeriod != nil {
		a.SalaryPeriod = patch.SalaryPeriod
	}
	if patch.DescriptionSummary != nil {
		a.DescriptionSummary = patch.DescriptionSummary
	}
	if patch.KeyRequirements != nil {
		a.KeyRequirements = patch.KeyRequirements
	}
	if patch.KeyResponsibilities != nil {
		a.KeyResponsibilities = patch.KeyResponsibilities
	}
	if patch.Stage != nil {
		stage, err := models.ParseStage(*patch.Stage)
		if err != nil {
			return nil, err
		}
		a.Stage = stage
	}
	if patch.Notes != nil {
		a.Notes = patch.Notes
	}
	a.UpdatedAt = time.Now().UTC()

	cp := *a
	return &cp, nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.apps[id]
	if !ok || a.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.apps, id)
	return nil
}

func (s *MemoryStore) Reorder(_ context.Context, ownerID string, columns map[string][]string) error {
	for stageName := range columns {
		if _, err := models.ParseStage(stageName); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for stageName, ids := range columns {
		for pos, id := range ids {
			a, ok := s.apps[id]
			if !ok || a.OwnerID != ownerID {
				continue
			}
			a.Stage = models.Stage(stageName)
			a.SortOrder = pos
			a.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}
