package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/api/middleware"
	"talentmesh-onboarding/internal/avatar"
	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/docparse"
	"talentmesh-onboarding/internal/enrich"
	"talentmesh-onboarding/internal/llm"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/users"
	"talentmesh-onboarding/internal/wizard"
	"talentmesh-onboarding/pkg/models"
	"talentmesh-onboarding/pkg/utils"
)

// ResumeUploader stores an uploaded resume and returns its public URL
type ResumeUploader interface {
	UploadResume(identity, fileName string, data []byte, contentType string) (string, error)
}

// UserStore is the slice of the user repository the wizard endpoints use
type UserStore interface {
	GetByExternalID(ctx context.Context, externalID string) (*users.User, error)
	SetRole(ctx context.Context, externalID, role string) error
	SetAvatarURL(ctx context.Context, externalID, avatarURL string) error
	Finalize(ctx context.Context, externalID string, profile interface{}) error
}

// WizardDeps bundles what the wizard endpoints need. All clients are
// constructed at startup and passed in; handlers hold no globals.
type WizardDeps struct {
	Config     *config.Config
	Controller *wizard.Controller
	LLM        *llm.Manager
	Limiter    *enrich.Limiter
	Uploader   ResumeUploader
	Avatars    *avatar.Generator
	Users      UserStore
}

// WizardRenderHandler handles GET /api/v1/wizard?step=N
func WizardRenderHandler(deps WizardDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := middleware.IdentityFromContext(c)

		step, err := stepParam(c)
		if err != nil {
			return badRequest(c, "Invalid step parameter")
		}

		render, err := deps.Controller.Render(c.Request().Context(), identity, step)
		if err != nil {
			if errors.Is(err, wizard.ErrStepOutOfRange) {
				return badRequest(c, "Step index out of range")
			}
			return internalError(c, "Failed to render step")
		}

		return c.JSON(http.StatusOK, render)
	}
}

// WizardSubmitHandler handles POST /api/v1/wizard?step=N. Form steps
// dispatch to the wizard controller; the resume-upload and avatar steps
// run their enrichment flows first.
func WizardSubmitHandler(deps WizardDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := middleware.IdentityFromContext(c)
		logger := logging.GetGlobalLogger()

		step, err := stepParam(c)
		if err != nil {
			return badRequest(c, "Invalid step parameter")
		}
		if _, found := wizard.StepAt(step); !found {
			return badRequest(c, "Step index out of range")
		}

		ctx := c.Request().Context()

		switch step {
		case 1:
			return submitResumeUpload(c, deps, identity)
		case 6:
			if !deps.Limiter.TryAcquire(identity) {
				return respondCustomError(c, utils.NewStepConflictError("an enrichment call is already running for this identity"))
			}
			resp, err := submitAvatarStep(c, deps, identity)
			deps.Limiter.Release(identity)
			if err != nil {
				if errors.Is(err, users.ErrUserNotFound) {
					return c.JSON(http.StatusNotFound, models.StepSubmitResponse{
						Step:  step,
						Error: "No user record for this identity",
					})
				}
				logger.Error("Avatar step failed", map[string]interface{}{
					"identity": identity,
					"error":    err.Error(),
				})
				return c.JSON(http.StatusBadGateway, models.StepSubmitResponse{
					Step:  step,
					Error: "Avatar generation failed, please retry",
				})
			}
			return c.JSON(http.StatusOK, resp)
		}

		form, err := c.FormParams()
		if err != nil {
			return badRequest(c, "Invalid form body")
		}

		resp, err := deps.Controller.SubmitForm(ctx, identity, step, wizard.FormValues(form))
		if err != nil {
			logger.Error("Step submission failed", map[string]interface{}{
				"identity": identity,
				"step":     step,
				"error":    err.Error(),
			})
			return internalError(c, "Failed to process step submission")
		}

		if !resp.Success {
			return c.JSON(http.StatusBadRequest, resp)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// submitResumeUpload stores the uploaded file, runs the extraction call,
// and persists the resulting payload. Provider failure substitutes a
// visibly labeled placeholder so the wizard still advances.
func submitResumeUpload(c echo.Context, deps WizardDeps, identity string) error {
	logger := logging.GetGlobalLogger()
	ctx := c.Request().Context()

	if !deps.Limiter.TryAcquire(identity) {
		return respondCustomError(c, utils.NewStepConflictError("an enrichment call is already running for this identity"))
	}
	defer deps.Limiter.Release(identity)

	fileHeader, err := c.FormFile("resumeFile")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.StepSubmitResponse{
			Step:  1,
			Error: "No resume file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return internalError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return internalError(c, "Failed to read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")

	resumeText, err := docparse.ExtractText(fileHeader.Filename, contentType, data)
	if err != nil {
		logger.Warn("Resume text extraction failed", map[string]interface{}{
			"identity":  identity,
			"file_name": fileHeader.Filename,
			"error":     err.Error(),
		})
		return c.JSON(http.StatusBadRequest, models.StepSubmitResponse{
			Step:  1,
			Error: "Could not read text from the uploaded resume. Upload a PDF or plain-text file.",
		})
	}

	resumeURL, err := deps.Uploader.UploadResume(identity, fileHeader.Filename, data, contentType)
	if err != nil {
		logger.Error("Resume upload failed", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
		return respondCustomError(c, utils.NewUploadError(err.Error()))
	}

	extract := extractResume(c, deps, identity, resumeText, resumeURL)

	if err := deps.Controller.SavePayload(ctx, identity, 1, extract); err != nil {
		return internalError(c, "Failed to persist resume data")
	}

	return c.JSON(http.StatusOK, deps.Controller.AdvanceResponse(1, extract))
}

// extractResume runs the provider extraction under the enrichment limits,
// falling back to the placeholder payload on any failure
func extractResume(c echo.Context, deps WizardDeps, identity, resumeText, resumeURL string) *models.ResumeExtract {
	logger := logging.GetGlobalLogger()
	provider := deps.LLM.GetProviderName()

	if !deps.Limiter.Allow(identity, provider) {
		logger.Warn("Resume extraction rejected by limiter, using placeholder", map[string]interface{}{
			"identity": identity,
		})
		return models.PlaceholderResumeExtract(resumeURL)
	}

	raw, err := deps.LLM.ExtractResume(c.Request().Context(), resumeText)
	if err != nil {
		deps.Limiter.RecordFailure(identity, provider, err)
		logger.Error("Resume extraction failed, using placeholder", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
		return models.PlaceholderResumeExtract(resumeURL)
	}

	deps.Limiter.RecordSuccess(provider)
	return raw.ToResumeExtract(resumeURL)
}

// submitAvatarStep generates the avatar, finalizes the profile, and
// completes the wizard
func submitAvatarStep(c echo.Context, deps WizardDeps, identity string) (*models.StepSubmitResponse, error) {
	ctx := c.Request().Context()

	asset, err := GenerateAvatarForIdentity(c, deps, identity)
	if err != nil {
		return nil, err
	}

	if err := deps.Controller.SavePayload(ctx, identity, 6, asset); err != nil {
		return nil, err
	}

	if err := FinalizeProfile(ctx, deps, identity, asset); err != nil {
		return nil, err
	}

	resp := deps.Controller.AdvanceResponse(6, asset)
	return resp, nil
}

func stepParam(c echo.Context) (int, error) {
	raw := c.QueryParam("step")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// respondCustomError maps an application error onto its HTTP status
func respondCustomError(c echo.Context, err *utils.CustomError) error {
	requestID, _ := c.Get("request_id").(string)
	return c.JSON(err.Code, models.ErrorResponse{
		Error:     http.StatusText(err.Code),
		Message:   err.Error(),
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

func badRequest(c echo.Context, message string) error {
	requestID, _ := c.Get("request_id").(string)
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:     "bad_request",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}

func internalError(c echo.Context, message string) error {
	requestID, _ := c.Get("request_id").(string)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
