package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draftdeck/draftdeck/app/api"
	"github.com/draftdeck/draftdeck/app/blotato"
	"github.com/draftdeck/draftdeck/app/brand"
	"github.com/draftdeck/draftdeck/app/cfg"
	"github.com/draftdeck/draftdeck/app/content"
	"github.com/draftdeck/draftdeck/app/database"
	"github.com/draftdeck/draftdeck/app/discovery"
	"github.com/draftdeck/draftdeck/app/llm"
	"github.com/draftdeck/draftdeck/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting DraftDeck server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrationVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", migrationVersion, "dirty", dirty)

	draftRepo := database.NewDraftRepository(db)
	recordRepo := database.NewPublishRecordRepository(db)

	defaultProvider := llm.NewOpenAIProvider(llm.Config{
		APIKey: appCfg.OpenAIAPIKey,
		APIURL: appCfg.OpenAIAPIURL,
		Model:  appCfg.OpenAIModel,
	})

	var altProvider llm.Provider
	if appCfg.AnthropicAPIKey != "" {
		altProvider = llm.NewAnthropicProvider(llm.Config{
			APIKey: appCfg.AnthropicAPIKey,
			APIURL: appCfg.AnthropicAPIURL,
			Model:  appCfg.AnthropicModel,
		})
	} else {
		slog.Warn("Anthropic API key not set, alternate copywriter disabled")
	}

	guidelines := brand.NewLoader(appCfg.GuidelinesFile)

	researchEngine := content.NewResearchEngine(defaultProvider)
	generator := content.NewFormatGenerator(defaultProvider, altProvider)
	pipeline := content.NewPipeline(researchEngine, generator, guidelines, draftRepo)
	compliance := content.NewComplianceGate(defaultProvider, guidelines)

	publisher := blotato.NewClient(appCfg.PublisherBaseUrl, appCfg.PublisherAPIKey,
		blotato.WithUserAgent(appCfg.UserAgent))
	orchestrator := blotato.NewOrchestrator(publisher, draftRepo, recordRepo)

	httpClient := &http.Client{Timeout: 30 * time.Second}
	topicSource := discovery.NewTopicSource(httpClient, appCfg.UserAgent)
	extractor := discovery.NewExtractor(httpClient, appCfg.UserAgent)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_seconds", appCfg.ReconcileInterval)
	scheduler := tasks.NewScheduler(publisher, draftRepo, recordRepo)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(pipeline, researchEngine, compliance, draftRepo, recordRepo,
		orchestrator, topicSource, extractor, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
