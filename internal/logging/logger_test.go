package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/internal/logging/types"
)

// captureAdapter records entries so tests can assert on what was written.
type captureAdapter struct {
	name    string
	entries []*types.LogEntry
}

func (a *captureAdapter) Write(entry *types.LogEntry) error {
	a.entries = append(a.entries, entry)
	return nil
}

func (a *captureAdapter) Close() error { return nil }
func (a *captureAdapter) Name() string { return a.name }

func TestMultiLoggerFansOutToAllAdapters(t *testing.T) {
	first := &captureAdapter{name: "first"}
	second := &captureAdapter{name: "second"}

	logger := NewMultiLogger()
	require.NoError(t, logger.AddAdapter(first))
	require.NoError(t, logger.AddAdapter(second))

	logger.Info("request handled", map[string]interface{}{"status": 200})

	require.Len(t, first.entries, 1)
	require.Len(t, second.entries, 1)
	assert.Equal(t, "request handled", first.entries[0].Message)
	assert.Equal(t, 200, first.entries[0].Fields["status"])
}

func TestMultiLoggerLevelFiltering(t *testing.T) {
	capture := &captureAdapter{name: "capture"}

	logger := NewMultiLogger()
	require.NoError(t, logger.AddAdapter(capture))
	logger.SetLevel(WarnLevel)

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("kept too")

	require.Len(t, capture.entries, 2)
	assert.Equal(t, WarnLevel, capture.entries[0].Level)
	assert.Equal(t, ErrorLevel, capture.entries[1].Level)
}

func TestWithFieldCarriesFieldOnEveryEntry(t *testing.T) {
	capture := &captureAdapter{name: "capture"}

	logger := NewMultiLogger()
	require.NoError(t, logger.AddAdapter(capture))

	scoped := logger.WithField("request_id", "req-123")
	scoped.Info("first")
	scoped.Info("second", map[string]interface{}{"extra": true})

	require.Len(t, capture.entries, 2)
	assert.Equal(t, "req-123", capture.entries[0].Fields["request_id"])
	assert.Equal(t, "req-123", capture.entries[1].Fields["request_id"])
	assert.Equal(t, true, capture.entries[1].Fields["extra"])
}

func TestAddAdapterRejectsDuplicateName(t *testing.T) {
	logger := NewMultiLogger()
	require.NoError(t, logger.AddAdapter(&captureAdapter{name: "stdout"}))
	assert.Error(t, logger.AddAdapter(&captureAdapter{name: "stdout"}))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLogLevel("WARNING"))
	assert.Equal(t, InfoLevel, ParseLogLevel("unknown"))
}
