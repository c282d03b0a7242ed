package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/api/middleware"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/users"
	"talentmesh-onboarding/pkg/models"
)

// RoleSelectHandler handles POST /api/v1/role. Picking a marketplace side
// is the entry into onboarding; the record itself is provisioned by the
// identity webhook.
func RoleSelectHandler(deps WizardDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := middleware.IdentityFromContext(c)
		logger := logging.GetGlobalLogger()
		ctx := c.Request().Context()

		var req models.RoleSelectRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.RoleSelectResponse{
				Error: "Invalid request body",
			})
		}

		if req.Role != users.RoleJobSeeker && req.Role != users.RoleTalentSeeker {
			return c.JSON(http.StatusBadRequest, models.RoleSelectResponse{
				Error: "Role must be job_seeker or talent_seeker",
			})
		}

		if err := deps.Users.SetRole(ctx, identity, req.Role); err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, models.RoleSelectResponse{
					Error: "No user record for this identity",
				})
			}
			logger.Error("Role selection failed", map[string]interface{}{
				"identity": identity,
				"error":    err.Error(),
			})
			return internalError(c, "Failed to store role selection")
		}

		user, err := deps.Users.GetByExternalID(ctx, identity)
		if err != nil {
			return internalError(c, "Failed to load user record")
		}

		return c.JSON(http.StatusOK, models.RoleSelectResponse{
			Success:   true,
			Role:      user.Role,
			Onboarded: user.Onboarded(),
		})
	}
}
