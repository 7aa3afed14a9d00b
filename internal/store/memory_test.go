package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

func strPtr(s string) *string { return &s }

func newApp(owner, company, title string) *models.Application {
	return &models.Application{
		OwnerID: owner,
		Company: company,
		Title:   title,
	}
}

func TestMemoryStoreCreateDefaults(t *testing.T) {
	s := NewMemoryStore()
	app := newApp("alice", "Acme", "Engineer")

	require.NoError(t, s.Create(context.Background(), app))

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.StageApplied, app.Stage)
	assert.False(t, app.AppliedDate.IsZero())
	assert.NotNil(t, app.KeyRequirements)
}

func TestMemoryStoreOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	app := newApp("alice", "Acme", "Engineer")
	app.URL = strPtr("https://acme.example/jobs/1")
	require.NoError(t, s.Create(ctx, app))

	// Another owner cannot see, update or delete the record.
	_, err := s.Get(ctx, "bob", app.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, "bob", app.ID, &models.ApplicationUpdateRequest{Notes: strPtr("hi")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "bob", app.ID), ErrNotFound)

	found, err := s.FindByURL(ctx, "bob", "https://acme.example/jobs/1")
	require.NoError(t, err)
	assert.Nil(t, found, "url lookup is owner-scoped")

	bobApps, err := s.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobApps)
}

func TestMemoryStoreFindByFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	app := newApp("alice", "Acme Corp", "Senior Engineer")
	app.Location = strPtr("Berlin")
	require.NoError(t, s.Create(ctx, app))

	// Case-insensitive match
	found, err := s.FindByFields(ctx, "alice", "acme corp", "SENIOR ENGINEER", nil)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, app.ID, found.ID)

	// Location narrows the match
	found, err = s.FindByFields(ctx, "alice", "Acme Corp", "Senior Engineer", strPtr("Munich"))
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = s.FindByFields(ctx, "alice", "Acme Corp", "Senior Engineer", strPtr("berlin"))
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	app := newApp("alice", "Acme", "Engineer")
	require.NoError(t, s.Create(ctx, app))

	stage := string(models.StageInterview)
	updated, err := s.Update(ctx, "alice", app.ID, &models.ApplicationUpdateRequest{
		Stage: &stage,
		Notes: strPtr("phone screen on Friday"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StageInterview, updated.Stage)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "phone screen on Friday", *updated.Notes)
	assert.Equal(t, "Acme", updated.Company, "untouched fields survive")

	bad := "NOT_A_STAGE"
	_, err = s.Update(ctx, "alice", app.ID, &models.ApplicationUpdateRequest{Stage: &bad})
	assert.Error(t, err)
}

func TestMemoryStoreReorder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a := newApp("alice", "Acme", "Engineer")
	b := newApp("alice", "Globex", "Analyst")
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))

	err := s.Reorder(ctx, "alice", map[string][]string{
		string(models.StageInterview): {b.ID, a.ID},
	})
	require.NoError(t, err)

	gotA, err := s.Get(ctx, "alice", a.ID)
	require.NoError(t, err)
	gotB, err := s.Get(ctx, "alice", b.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StageInterview, gotA.Stage)
	assert.Equal(t, 1, gotA.SortOrder)
	assert.Equal(t, 0, gotB.SortOrder)

	// Unknown stage names are rejected before any mutation.
	err = s.Reorder(ctx, "alice", map[string][]string{"BACKLOG": {a.ID}})
	assert.Error(t, err)
}
