package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/api/handlers"
	"talentmesh-onboarding/internal/api/routes"
	"talentmesh-onboarding/internal/avatar"
	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/enrich"
	"talentmesh-onboarding/internal/imagegen"
	"talentmesh-onboarding/internal/llm"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/store"
	"talentmesh-onboarding/internal/users"
	"talentmesh-onboarding/internal/wizard"
	"talentmesh-onboarding/pkg/utils"
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
	logger.Info("Starting TalentMesh Onboarding", map[string]interface{}{
		"store": cfg.Wizard.Store,
	})

	// Step payload store
	stepStore, err := store.NewStepStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize step store", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Durable user records
	usersRepo, err := users.NewRepository(cfg)
	if err != nil {
		logger.Error("Failed to initialize user repository", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Object storage for resumes and avatars
	spaces, err := utils.NewSpacesClient(cfg)
	if err != nil {
		logger.Error("Failed to initialize object storage client", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// LLM manager; the server runs without a provider, enrichment steps
	// degrade to placeholders
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Warn("LLM manager started degraded", map[string]interface{}{"error": err.Error()})
	}

	// Image generation and avatar orchestration
	imageClient := imagegen.NewClient(cfg)
	avatarGenerator := avatar.NewGenerator(imageClient, spaces)

	// Enrichment limits
	limiter := enrich.NewLimiter(cfg)

	controller := wizard.NewController(stepStore, cfg)

	deps := handlers.WizardDeps{
		Config:     cfg,
		Controller: controller,
		LLM:        llmManager,
		Limiter:    limiter,
		Uploader:   spaces,
		Avatars:    avatarGenerator,
		Users:      usersRepo,
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, deps, stepStore, llmManager, usersRepo)

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

		limiter.Stop()

		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		if err := stepStore.Close(); err != nil {
			logger.Error("Error closing step store", map[string]interface{}{"error": err.Error()})
		}

		if err := usersRepo.Close(); err != nil {
			logger.Error("Error closing user repository", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
		_ = logging.CloseLogging()
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
