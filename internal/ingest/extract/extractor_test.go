package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/stage"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.MinTextLength = 200
	cfg.Extractor.MinPastedLength = 30
	cfg.Extractor.PreviewLength = 400
	return cfg
}

const para = "We are looking for a Senior Go Engineer to join our platform team. " +
	"You will design and operate high-throughput ingestion services. "

func TestExtractFromHTMLReaderMode(t *testing.T) {
	html := `<html><head><title>Senior Go Engineer - Acme</title></head><body>
		<nav><a href="/">Home</a> <a href="/jobs">Jobs</a></nav>
		<article>
			<p>` + strings.Repeat(para, 3) + `</p>
			<p>` + strings.Repeat(para, 2) + `</p>
		</article>
		<footer><a href="/about">About</a></footer>
	</body></html>`

	e := NewExtractor(testConfig())
	result, err := e.ExtractFromHTML(html, "https://acme.example/jobs/1")
	require.NoError(t, err)

	assert.Equal(t, models.SourceReaderMode, result.SourceStrategy)
	assert.Equal(t, "Senior Go Engineer - Acme", result.TitleGuess)
	assert.Equal(t, "https://acme.example/jobs/1", result.URL)
	assert.False(t, result.Blocked)
	assert.Contains(t, result.Text, "Senior Go Engineer")
	assert.GreaterOrEqual(t, len(result.Text), 200)
}

func TestExtractFromHTMLSelectorFallback(t *testing.T) {
	// Text lives in a span, which reader-mode scoring never considers.
	html := `<html><head><title>Job</title></head><body>
		<span id="jobDescriptionText">` + strings.Repeat(para, 4) + `</span>
	</body></html>`

	e := NewExtractor(testConfig())
	result, err := e.ExtractFromHTML(html, "https://board.example/jobs/2")
	require.NoError(t, err)

	assert.Equal(t, models.SourceSelectorFallback, result.SourceStrategy)
	assert.Contains(t, result.Text, "Senior Go Engineer")
}

func TestExtractFromHTMLScriptsStripped(t *testing.T) {
	html := `<html><body><article>
		<script>var tracking = "DO_NOT_EXTRACT";</script>
		<p>` + strings.Repeat(para, 4) + `</p>
	</article></body></html>`

	e := NewExtractor(testConfig())
	result, err := e.ExtractFromHTML(html, "")
	require.NoError(t, err)
	assert.NotContains(t, result.Text, "DO_NOT_EXTRACT")
}

func TestExtractFromHTMLLoginWall(t *testing.T) {
	html := `<html><head><title>Sign in | BigBoard</title></head><body>
		<div class="login-form">
			<p>Sign in to view this job posting.</p>
			<p>Forgot password? Create an account to get started.</p>
		</div>
	</body></html>`

	e := NewExtractor(testConfig())
	result, err := e.ExtractFromHTML(html, "https://bigboard.example/jobs/3")
	require.NoError(t, err)

	assert.True(t, result.Blocked)
	assert.Equal(t, models.SourceBlocked, result.SourceStrategy)
	assert.NotEmpty(t, result.Reason)
	assert.NotEmpty(t, result.Suggestion)
	assert.LessOrEqual(t, len(result.Text), 400+len("..."))
}

func TestExtractFromHTMLTooShort(t *testing.T) {
	html := `<html><body><div>Short job blurb.</div></body></html>`

	e := NewExtractor(testConfig())
	_, err := e.ExtractFromHTML(html, "https://example.com/jobs/4")
	require.Error(t, err)

	se := stage.As(err)
	assert.Equal(t, stage.StepExtract, se.Step)
	assert.Equal(t, 400, se.Status)
}

func TestExtractFromPaste(t *testing.T) {
	e := NewExtractor(testConfig())
	result := e.ExtractFromPaste("  some   pasted text about a role  ", "My Job")

	assert.Equal(t, models.SourcePaste, result.SourceStrategy)
	assert.Equal(t, "My Job", result.TitleGuess)
	assert.Equal(t, "some pasted text about a role", result.Text)
}
