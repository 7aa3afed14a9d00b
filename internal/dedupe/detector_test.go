package dedupe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/internal/store"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

func strPtr(s string) *string { return &s }

func seed(t *testing.T, s store.ApplicationStore, owner string) *models.Application {
	t.Helper()
	app := &models.Application{
		OwnerID:  owner,
		Company:  "Acme Corp",
		Title:    "Senior Engineer",
		Location: strPtr("Berlin"),
		URL:      strPtr("https://acme.example/jobs/1"),
	}
	require.NoError(t, s.Create(context.Background(), app))
	return app
}

func TestDetectURLMatch(t *testing.T) {
	s := store.NewMemoryStore()
	existing := seed(t, s, "alice")

	d := NewDetector(s)
	result, err := d.Detect(context.Background(), "alice",
		"https://acme.example/jobs/1", strPtr("Different Co"), strPtr("Different Title"), nil)
	require.NoError(t, err)

	assert.True(t, result.Duplicate)
	assert.Equal(t, ReasonURLMatch, result.Reason)
	assert.Equal(t, existing.ID, result.Existing.ID)
}

func TestDetectFieldsMatch(t *testing.T) {
	s := store.NewMemoryStore()
	existing := seed(t, s, "alice")

	d := NewDetector(s)

	// No URL hit, fields fall through.
	result, err := d.Detect(context.Background(), "alice",
		"https://other.example/jobs/9", strPtr("Acme Corp"), strPtr("Senior Engineer"), nil)
	require.NoError(t, err)

	assert.True(t, result.Duplicate)
	assert.Equal(t, ReasonFieldsMatch, result.Reason)
	assert.Equal(t, existing.ID, result.Existing.ID)
}

func TestDetectLocationNarrowsFieldMatch(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "alice")

	d := NewDetector(s)
	result, err := d.Detect(context.Background(), "alice",
		"", strPtr("Acme Corp"), strPtr("Senior Engineer"), strPtr("Munich"))
	require.NoError(t, err)
	assert.False(t, result.Duplicate, "same role in another city is a different posting")
}

func TestDetectOwnerScoped(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "alice")

	d := NewDetector(s)
	result, err := d.Detect(context.Background(), "bob",
		"https://acme.example/jobs/1", strPtr("Acme Corp"), strPtr("Senior Engineer"), nil)
	require.NoError(t, err)
	assert.False(t, result.Duplicate, "another owner may track the same posting")
}

func TestDetectNeedsBothFields(t *testing.T) {
	s := store.NewMemoryStore()
	seed(t, s, "alice")

	d := NewDetector(s)
	result, err := d.Detect(context.Background(), "alice", "", strPtr("Acme Corp"), nil, nil)
	require.NoError(t, err)
	assert.False(t, result.Duplicate, "company alone never matches")
}
