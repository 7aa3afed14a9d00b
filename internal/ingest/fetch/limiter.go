package fetch

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// domainLimiter tracks request pacing for a single remote host.
type domainLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter paces outbound fetches per domain so a burst of submissions
// against one job board does not look like a scrape run.
type RateLimiter struct {
	perMinute int
	domains   map[string]*domainLimiter
	mu        sync.Mutex
	ticker    *time.Ticker
	stop      chan struct{}
}

// NewRateLimiter creates a per-domain rate limiter allowing perMinute
// requests per domain with a small burst.
func NewRateLimiter(perMinute int) *RateLimiter {
	rl := &RateLimiter{
		perMinute: perMinute,
		domains:   make(map[string]*domainLimiter),
		ticker:    time.NewTicker(5 * time.Minute),
		stop:      make(chan struct{}),
	}

	go rl.cleanupRoutine()

	return rl
}

// Allow reports whether a request to the given domain may proceed now.
func (rl *RateLimiter) Allow(domain string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	domain = strings.ToLower(domain)

	dl, ok := rl.domains[domain]
	if !ok {
		dl = &domainLimiter{
			limiter: rate.NewLimiter(rate.Limit(float64(rl.perMinute)/60.0), 5),
		}
		rl.domains[domain] = dl
	}

	dl.lastSeen = time.Now()
	return dl.limiter.Allow()
}

// Stop terminates the idle-domain cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.ticker.Stop()
	close(rl.stop)
}

// cleanupRoutine drops limiters for domains not seen in the last hour.
func (rl *RateLimiter) cleanupRoutine() {
	for {
		select {
		case <-rl.ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-time.Hour)
			for domain, dl := range rl.domains {
				if dl.lastSeen.Before(cutoff) {
					delete(rl.domains, domain)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}
