package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/stage"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/pkg/utils"
)

// maxBodySize bounds how much HTML we read from an arbitrary page.
const maxBodySize = 5 << 20 // 5MB

// Page is the raw result of fetching a posting URL.
type Page struct {
	URL         string
	HTML        string
	HTTPStatus  int
	ContentType string
}

// Fetcher retrieves raw HTML for posting URLs with a bounded timeout and
// bot-resistant headers. Many job boards reject default automation clients,
// so requests carry a realistic browser user-agent and Accept header.
type Fetcher struct {
	cfg     *config.Config
	client  *http.Client
	limiter *RateLimiter
	logger  logging.Logger
}

// NewFetcher creates a fetcher from configuration.
func NewFetcher(cfg *config.Config) *Fetcher {
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			// Overall deadline comes from the request context; this is a
			// backstop for misbehaving transports.
			Timeout: cfg.Fetcher.RequestTimeout + 5*time.Second,
		},
		limiter: NewRateLimiter(cfg.Fetcher.RateLimit),
		logger:  logging.GetGlobalLogger(),
	}
}

// Close releases fetcher resources.
func (f *Fetcher) Close() {
	f.limiter.Stop()
}

// Fetch retrieves the page at rawURL. It follows redirects, disables
// caching (postings change), and cancels the underlying request when the
// timeout expires. Failures are FetchError-tagged: timeout, non-2xx status,
// or a body under the minimum HTML length.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	domain := utils.ExtractDomain(rawURL)
	if !f.limiter.Allow(domain) {
		return nil, stage.New(stage.StepFetch, http.StatusTooManyRequests,
			fmt.Errorf("rate limit exceeded for domain: %s", domain))
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Fetcher.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, stage.New(stage.StepFetch, http.StatusBadRequest,
			fmt.Errorf("invalid url: %w", err))
	}

	req.Header.Set("User-Agent", f.cfg.Fetcher.UserAgent)
	req.Header.Set("Accept", f.cfg.Fetcher.Accept)
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, stage.New(stage.StepFetch, http.StatusGatewayTimeout,
				fmt.Errorf("timed out fetching the job page after %s", f.cfg.Fetcher.RequestTimeout))
		}
		return nil, stage.New(stage.StepFetch, http.StatusBadGateway,
			fmt.Errorf("failed to fetch page: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, stage.New(stage.StepFetch, http.StatusBadGateway,
			fmt.Errorf("failed to read page body: %w", err))
	}

	contentType := resp.Header.Get("Content-Type")

	f.logger.Debug("Page fetched", map[string]interface{}{
		"url":          rawURL,
		"status":       resp.StatusCode,
		"content_type": contentType,
		"bytes":        len(body),
		"duration":     time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, stage.New(stage.StepFetch, http.StatusBadRequest,
			fmt.Errorf("failed to fetch page (HTTP %d)", resp.StatusCode))
	}

	html := string(body)
	if len(strings.TrimSpace(html)) < f.cfg.Fetcher.MinHTMLLength {
		return nil, stage.New(stage.StepFetch, http.StatusBadRequest,
			fmt.Errorf("fetched page returned empty HTML"))
	}

	return &Page{
		URL:         rawURL,
		HTML:        html,
		HTTPStatus:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}
