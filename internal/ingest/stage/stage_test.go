package stage

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

func TestNewTagsStepAndStatus(t *testing.T) {
	se := New(StepFetch, http.StatusBadGateway, errors.New("upstream refused"))

	assert.Equal(t, StepFetch, se.Step)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "fetch: upstream refused", se.Error())
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := New(StepExtract, http.StatusUnprocessableEntity, errors.New("login wall"))
	inner.Extract = &models.ExtractionResult{Blocked: true}
	wrapped := fmt.Errorf("run failed: %w", inner)

	se := As(wrapped)
	require.NotNil(t, se)
	assert.Equal(t, StepExtract, se.Step)
	assert.Equal(t, http.StatusUnprocessableEntity, se.Status)
	require.NotNil(t, se.Extract)
	assert.True(t, se.Extract.Blocked)
}

func TestAsTagsUnknownErrorsAsServer(t *testing.T) {
	se := As(errors.New("boom"))

	require.NotNil(t, se)
	assert.Equal(t, StepServer, se.Step)
	assert.Equal(t, 500, se.Status)
}
