package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/inbox"
	"github.com/Ahlonzo124/job-application-tracker/internal/llm"
	"github.com/Ahlonzo124/job-application-tracker/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}
	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler probes the dependencies a request actually needs: the
// database, the inbox backend and the parser.
func ReadinessHandler(pool *pgxpool.Pool, inboxStore inbox.Store, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		checks := map[string]string{"api": "ok"}
		status := "ready"
		code := http.StatusOK

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				checks["database"] = err.Error()
				status = "degraded"
				code = http.StatusServiceUnavailable
			} else {
				checks["database"] = "ok"
			}
		} else {
			checks["database"] = "memory"
		}

		if err := inboxStore.Ping(ctx); err != nil {
			checks["inbox"] = err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			checks["inbox"] = "ok"
		}

		if llmManager.IsHealthy() {
			checks["llm"] = "ok"
		} else {
			// A cold LLM does not block readiness; parse calls report it.
			checks["llm"] = "unverified"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// StatusHandler provides detailed service status.
func StatusHandler(cfg *config.Config, llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"service": "job-application-tracker",
			"version": "1.0.0",
			"uptime":  time.Since(startTime).String(),
			"llm": map[string]interface{}{
				"provider": llmManager.GetProviderName(),
				"model":    cfg.LLM.Model,
				"healthy":  llmManager.IsHealthy(),
			},
			"stages": models.Stages,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	})
}
