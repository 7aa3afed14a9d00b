package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// aiPathPrefixes are the endpoints that call the LLM and can legitimately
// run for minutes.
var aiPathPrefixes = []string{
	"/api/v1/parse",
	"/api/v1/ingest",
}

// SelectiveTimeoutConfig applies defaultTimeout to most endpoints and
// longTimeout to AI-backed ones.
func SelectiveTimeoutConfig(defaultTimeout, longTimeout time.Duration) echo.MiddlewareFunc {
	short := TimeoutConfig(defaultTimeout)
	long := TimeoutConfig(longTimeout)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		shortNext := short(next)
		longNext := long(next)
		return func(c echo.Context) error {
			for _, prefix := range aiPathPrefixes {
				if strings.HasPrefix(c.Path(), prefix) {
					return longNext(c)
				}
			}
			return shortNext(c)
		}
	}
}
