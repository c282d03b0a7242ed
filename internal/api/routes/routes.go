package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"talentmesh-onboarding/internal/api/handlers"
	"talentmesh-onboarding/internal/api/middleware"
	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/llm"
	"talentmesh-onboarding/internal/store"
	"talentmesh-onboarding/internal/users"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps handlers.WizardDeps, stepStore store.StepStore, llmManager *llm.Manager, usersRepo *users.Repository) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation(cfg.Wizard.MaxUploadMB))
	// Selective timeout: server default for form steps, 2 minutes for
	// routes that call the AI providers
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(stepStore, llmManager))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(stepStore, llmManager, deps.Limiter))

	// Identity provider webhook, authenticated by shared secret
	e.POST("/webhooks/identity", handlers.IdentityWebhookHandler(cfg, usersRepo))

	// API v1 routes
	v1 := e.Group("/api/v1", middleware.SessionAuth(cfg.Auth.JWTSecret))
	{
		v1.POST("/role", handlers.RoleSelectHandler(deps))

		wizard := v1.Group("/wizard")
		{
			wizard.GET("", handlers.WizardRenderHandler(deps))
			wizard.POST("", handlers.WizardSubmitHandler(deps))
			wizard.POST("/resume/clean", handlers.CleanResumeHandler(deps))
			wizard.POST("/avatar/generate", handlers.AvatarGenerateHandler(deps))
			wizard.POST("/finalize", handlers.FinalizeHandler(deps))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "TalentMesh Onboarding",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
