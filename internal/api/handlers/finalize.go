package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/api/middleware"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/users"
	"talentmesh-onboarding/internal/wizard"
	"talentmesh-onboarding/pkg/models"
)

// FinalizeHandler handles POST /api/v1/wizard/finalize. It assembles the
// saved step payloads into the profile record and marks onboarding
// complete. The avatar step normally triggers this itself; the explicit
// endpoint covers clients that finalize after a regeneration.
func FinalizeHandler(deps WizardDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := middleware.IdentityFromContext(c)
		logger := logging.GetGlobalLogger()
		ctx := c.Request().Context()

		var asset models.AvatarAsset
		avatarPtr := &asset
		if err := deps.Controller.Payload(ctx, identity, wizard.StepGenerateAvatar, avatarPtr); err != nil {
			avatarPtr = nil
		}

		if err := FinalizeProfile(ctx, deps, identity, avatarPtr); err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, models.FinalizeResponse{
					Error: "No user record for this identity",
				})
			}
			logger.Error("Finalization failed", map[string]interface{}{
				"identity": identity,
				"error":    err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.FinalizeResponse{
				Error: err.Error(),
			})
		}

		return c.JSON(http.StatusOK, models.FinalizeResponse{
			Success:      true,
			DashboardURL: deps.Config.Wizard.DashboardURL,
		})
	}
}
