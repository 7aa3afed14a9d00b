package routes

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/handlers"
	"github.com/Ahlonzo124/job-application-tracker/internal/api/middleware"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/inbox"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest"
	"github.com/Ahlonzo124/job-application-tracker/internal/llm"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
)

// Deps carries everything the routes need.
type Deps struct {
	Pipeline   *ingest.Pipeline
	Store      store.ApplicationStore
	Inbox      inbox.Store
	LLMManager *llm.Manager
	Pool       *pgxpool.Pool
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Deps) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Most endpoints answer quickly; AI-backed ones get the LLM budget.
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, cfg.LLM.Timeout+30*time.Second))

	auth := middleware.JWTAuth(cfg)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Pool, deps.Inbox, deps.LLMManager))
		health.GET("/live", handlers.LivenessHandler)
	}

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Pipeline routes. Extract and parse are stateless; saving needs an
		// owner.
		v1.POST("/extract", handlers.ExtractHandler(cfg, deps.Pipeline))
		v1.POST("/parse", handlers.ParseHandler(cfg, deps.Pipeline))
		v1.POST("/ingest", handlers.IngestHandler(cfg, deps.Pipeline))
		v1.POST("/ingest/save", handlers.IngestSaveHandler(cfg, deps.Pipeline), auth)

		// Application CRUD and board routes
		apps := v1.Group("/applications", auth)
		{
			apps.GET("", handlers.ListApplicationsHandler(cfg, deps.Store))
			apps.POST("", handlers.CreateApplicationHandler(cfg, deps.Store))
			apps.GET("/:id", handlers.GetApplicationHandler(cfg, deps.Store))
			apps.PATCH("/:id", handlers.UpdateApplicationHandler(cfg, deps.Store))
			apps.DELETE("/:id", handlers.DeleteApplicationHandler(cfg, deps.Store))
		}

		board := v1.Group("/board", auth)
		{
			board.GET("", handlers.BoardHandler(cfg, deps.Store))
			board.POST("/reorder", handlers.ReorderHandler(cfg, deps.Store))
		}

		v1.GET("/export/csv", handlers.ExportCSVHandler(cfg, deps.Store), auth)

		// Extension inbox. POST is unauthenticated (the extension has no
		// session); GET requires the web app's token.
		inboxGroup := v1.Group("/inbox")
		{
			inboxGroup.POST("", handlers.InboxPostHandler(cfg, deps.Inbox))
			inboxGroup.GET("/:token", handlers.InboxGetHandler(cfg, deps.Inbox))
		}
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(cfg, deps.LLMManager))

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Job Application Tracker",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
