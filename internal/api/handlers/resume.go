package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/api/middleware"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/pii"
	"talentmesh-onboarding/pkg/models"
)

// verifyNotice reminds the client that automated scrubbing cannot be
// trusted blindly
const verifyNotice = "Automated PII removal is best-effort. Review the cleaned text before continuing."

// CleanResumeHandler handles POST /api/v1/wizard/resume/clean. It scrubs
// personally identifying information from the stored resume text, running
// one aggressive second pass when patterns survive the first. The scrubbed
// text replaces the stored extract's cleaned resume.
func CleanResumeHandler(deps WizardDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := middleware.IdentityFromContext(c)
		logger := logging.GetGlobalLogger()
		ctx := c.Request().Context()
		provider := deps.LLM.GetProviderName()

		var req models.CleanResumeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.CleanResumeResponse{
				Error: "Invalid request body",
			})
		}

		extract, err := deps.Controller.ResumeExtract(ctx, identity)
		if err != nil {
			return internalError(c, "Failed to load resume data")
		}

		text := strings.TrimSpace(req.Text)
		if text == "" {
			if extract == nil || extract.CleanedResume == "" {
				return c.JSON(http.StatusBadRequest, models.CleanResumeResponse{
					Error: "No resume text to clean",
				})
			}
			text = extract.CleanedResume
		}

		if !deps.Limiter.TryAcquire(identity) {
			return c.JSON(http.StatusConflict, models.CleanResumeResponse{
				Error: "A cleaning pass is already in progress",
			})
		}
		defer deps.Limiter.Release(identity)

		if !deps.Limiter.Allow(identity, provider) {
			return c.JSON(http.StatusTooManyRequests, models.CleanResumeResponse{
				Error: "Too many cleaning requests, try again shortly",
			})
		}

		cleaned, err := deps.LLM.CleanResume(ctx, text, false)
		if err != nil {
			deps.Limiter.RecordFailure(identity, provider, err)
			logger.Error("Resume cleaning failed", map[string]interface{}{
				"identity": identity,
				"error":    err.Error(),
			})
			return c.JSON(http.StatusBadGateway, models.CleanResumeResponse{
				Error: "Cleaning provider unavailable",
			})
		}
		deps.Limiter.RecordSuccess(provider)

		passes := 1
		if pii.ContainsPII(cleaned) {
			// Exactly one aggressive retry; after that the user verifies
			aggressive, err := deps.LLM.CleanResume(ctx, cleaned, true)
			if err != nil {
				deps.Limiter.RecordFailure(identity, provider, err)
				logger.Warn("Aggressive cleaning pass failed, keeping first pass", map[string]interface{}{
					"identity": identity,
					"error":    err.Error(),
				})
			} else {
				cleaned = aggressive
				passes = 2
			}
		}

		if extract != nil {
			extract.CleanedResume = cleaned
			if err := deps.Controller.SavePayload(ctx, identity, 1, extract); err != nil {
				return internalError(c, "Failed to persist cleaned resume")
			}
		}

		return c.JSON(http.StatusOK, models.CleanResumeResponse{
			Success:       true,
			CleanedResume: cleaned,
			Passes:        passes,
			VerifyNotice:  verifyNotice,
		})
	}
}
