package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/api/middleware"
	"talentmesh-onboarding/internal/avatar"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/store"
	"talentmesh-onboarding/internal/users"
	"talentmesh-onboarding/internal/wizard"
	"talentmesh-onboarding/pkg/models"
)

// AvatarGenerateHandler handles POST /api/v1/wizard/avatar/generate. It
// regenerates the avatar from the saved step payloads and replaces the
// stored asset; failures are retryable without losing wizard progress.
func AvatarGenerateHandler(deps WizardDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := middleware.IdentityFromContext(c)
		logger := logging.GetGlobalLogger()
		ctx := c.Request().Context()

		if !deps.Limiter.TryAcquire(identity) {
			return c.JSON(http.StatusConflict, models.AvatarResponse{
				Error: "An avatar generation is already in progress",
				Retry: true,
			})
		}
		defer deps.Limiter.Release(identity)

		asset, err := GenerateAvatarForIdentity(c, deps, identity)
		if err != nil {
			logger.Error("Avatar generation failed", map[string]interface{}{
				"identity": identity,
				"error":    err.Error(),
			})
			return c.JSON(http.StatusBadGateway, models.AvatarResponse{
				Error: "Avatar generation failed",
				Retry: true,
			})
		}

		if err := deps.Controller.SavePayload(ctx, identity, 6, asset); err != nil {
			return internalError(c, "Failed to persist avatar")
		}

		return c.JSON(http.StatusOK, models.AvatarResponse{
			Success: true,
			Avatar:  asset,
		})
	}
}

// GenerateAvatarForIdentity assembles the prompt inputs from the saved
// step payloads and runs the image generation. The avatar URL is stored
// on the user record best-effort; the asset is still returned when no
// user row exists yet.
func GenerateAvatarForIdentity(c echo.Context, deps WizardDeps, identity string) (*models.AvatarAsset, error) {
	logger := logging.GetGlobalLogger()
	ctx := c.Request().Context()
	provider := "imagegen"

	var basic models.BasicInfo
	if err := deps.Controller.Payload(ctx, identity, wizard.StepBasicInfo, &basic); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("basic info step not completed")
		}
		return nil, err
	}

	extract, err := deps.Controller.ResumeExtract(ctx, identity)
	if err != nil {
		return nil, err
	}
	if extract == nil {
		return nil, fmt.Errorf("resume step not completed")
	}

	var clearance models.ClearanceInfo
	if err := deps.Controller.Payload(ctx, identity, wizard.StepSecurityClearance, &clearance); err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if !deps.Limiter.Allow(identity, provider) {
		return nil, fmt.Errorf("avatar generation rate limited")
	}

	alias := basic.Alias
	if alias == "" {
		alias = basic.FullName
	}

	input := avatar.PromptInput{
		Alias:             alias,
		Summary:           extract.Summary,
		Skills:            extract.Skills,
		YearsOfExperience: extract.YearsOfExperience,
		HasClearance:      clearance.HasClearance,
	}

	asset, err := deps.Avatars.Generate(ctx, identity, input)
	if err != nil {
		deps.Limiter.RecordFailure(identity, provider, err)
		return nil, err
	}
	deps.Limiter.RecordSuccess(provider)

	if err := deps.Users.SetAvatarURL(ctx, identity, asset.ImageURL); err != nil {
		if !errors.Is(err, users.ErrUserNotFound) {
			logger.Warn("Failed to store avatar URL on user record", map[string]interface{}{
				"identity": identity,
				"error":    err.Error(),
			})
		}
	}

	return asset, nil
}

// FinalizeProfile assembles the full profile from the step store, writes
// it to the user record, and clears the per-step payloads
func FinalizeProfile(ctx context.Context, deps WizardDeps, identity string, asset *models.AvatarAsset) error {
	profile, err := assembleProfile(ctx, deps, identity)
	if err != nil {
		return err
	}
	profile.Avatar = asset

	if err := deps.Users.Finalize(ctx, identity, profile); err != nil {
		return err
	}

	deps.Controller.ClearAll(ctx, identity)
	return nil
}

// assembleProfile loads every step payload. Basic info and the resume
// extract are required; the remaining steps finalize as zero values when
// absent.
func assembleProfile(ctx context.Context, deps WizardDeps, identity string) (*models.Profile, error) {
	var profile models.Profile

	if err := deps.Controller.Payload(ctx, identity, wizard.StepBasicInfo, &profile.BasicInfo); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("basic info step not completed")
		}
		return nil, err
	}

	if err := deps.Controller.Payload(ctx, identity, wizard.StepResumeUpload, &profile.Resume); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("resume step not completed")
		}
		return nil, err
	}

	optional := []struct {
		key string
		dst interface{}
	}{
		{wizard.StepLocationPreferences, &profile.Location},
		{wizard.StepAvailability, &profile.Availability},
		{wizard.StepSecurityClearance, &profile.Clearance},
	}
	for _, step := range optional {
		if err := deps.Controller.Payload(ctx, identity, step.key, step.dst); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return &profile, nil
}
