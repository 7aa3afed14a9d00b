package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/Ahlonzo124/job-application-tracker/internal/api/routes"
	"github.com/Ahlonzo124/job-application-tracker/internal/config"
	"github.com/Ahlonzo124/job-application-tracker/internal/inbox"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/extract"
	"github.com/Ahlonzo124/job-application-tracker/internal/ingest/fetch"
	"github.com/Ahlonzo124/job-application-tracker/internal/llm"
	"github.com/Ahlonzo124/job-application-tracker/internal/logging"
	"github.com/Ahlonzo124/job-application-tracker/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	logger := logging.GetGlobalLogger()
	logger.Info("Starting Job Application Tracker")

	ctx := context.Background()

	// Storage. Without a database URL the service runs on the in-memory
	// store, which is enough for local development.
	var (
		pool     *pgxpool.Pool
		appStore store.ApplicationStore
	)
	if cfg.Database.URL != "" {
		pool, err = store.NewPostgresPool(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to connect to postgres", map[string]interface{}{"error": err.Error()})
		}
		if err := store.Migrate(ctx, pool); err != nil {
			logger.Fatal("Failed to apply schema", map[string]interface{}{"error": err.Error()})
		}
		appStore = store.NewPostgresStore(pool)
	} else {
		logger.Warn("No database configured, using in-memory store")
		appStore = store.NewMemoryStore()
	}

	// Extension inbox
	inboxStore, err := inbox.NewStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create inbox store", map[string]interface{}{"error": err.Error()})
	}

	// LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
	}

	// Pipeline
	fetcher := fetch.NewFetcher(cfg)
	extractor := extract.NewExtractor(cfg)
	pipeline := ingest.NewPipeline(cfg, fetcher, extractor, llmManager, appStore)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, routes.Deps{
		Pipeline:   pipeline,
		Store:      appStore,
		Inbox:      inboxStore,
		LLMManager: llmManager,
		Pool:       pool,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		fetcher.Close()

		if err := inboxStore.Close(); err != nil {
			logger.Error("Error closing inbox store", map[string]interface{}{"error": err.Error()})
		}

		if pool != nil {
			pool.Close()
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Info("Server stopped", map[string]interface{}{"reason": err.Error()})
	}
}
