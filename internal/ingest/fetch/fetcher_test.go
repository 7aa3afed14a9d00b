package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/stage"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Fetcher.UserAgent = "test-agent"
	cfg.Fetcher.Accept = "text/html"
	cfg.Fetcher.RequestTimeout = 2 * time.Second
	cfg.Fetcher.MinHTMLLength = 50
	cfg.Fetcher.RateLimit = 600
	return cfg
}

func TestFetchSuccess(t *testing.T) {
	page := "<html><body>" + strings.Repeat("job posting content ", 10) + "</body></html>"

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := NewFetcher(testConfig())
	defer f.Close()

	result, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, page, result.HTML)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Equal(t, "test-agent", gotUA)
}

func TestFetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(testConfig())
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	se := stage.As(err)
	assert.Equal(t, stage.StepFetch, se.Step)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Contains(t, se.Err.Error(), "HTTP 404")
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(testConfig())
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	se := stage.As(err)
	assert.Equal(t, stage.StepFetch, se.Step)
	assert.Contains(t, se.Err.Error(), "empty HTML")
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("<html><body>too late</body></html>"))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Fetcher.RequestTimeout = 50 * time.Millisecond

	f := NewFetcher(cfg)
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	se := stage.As(err)
	assert.Equal(t, stage.StepFetch, se.Step)
	assert.Equal(t, http.StatusGatewayTimeout, se.Status)
}

func TestFetchRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("x", 100) + "</body></html>"))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Fetcher.RateLimit = 1 // one request per minute, burst exhausts fast

	f := NewFetcher(cfg)
	defer f.Close()

	var rateLimited bool
	for i := 0; i < 10; i++ {
		_, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			se := stage.As(err)
			if se.Status == http.StatusTooManyRequests {
				rateLimited = true
				break
			}
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.True(t, rateLimited, "burst should run out within ten requests")
}
