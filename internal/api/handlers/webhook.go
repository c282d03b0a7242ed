package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/users"
	"talentmesh-onboarding/pkg/models"
)

// webhookSecretHeader carries the shared secret configured with the
// identity provider
const webhookSecretHeader = "X-Webhook-Secret"

var validate = validator.New()

// IdentityWebhookHandler handles POST /webhooks/identity. The identity
// provider posts user.created events here; the handler provisions a local
// user record keyed by the provider's stable ID.
func IdentityWebhookHandler(cfg *config.Config, repo *users.Repository) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()
		requestID, _ := c.Get("request_id").(string)

		secret := c.Request().Header.Get(webhookSecretHeader)
		if cfg.Auth.WebhookSecret == "" ||
			subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.Auth.WebhookSecret)) != 1 {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:     "unauthorized",
				Message:   "Invalid webhook secret",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		var event models.WebhookEvent
		if err := c.Bind(&event); err != nil {
			return badRequest(c, "Invalid webhook payload")
		}
		if err := validate.Struct(&event); err != nil {
			return badRequest(c, "Invalid webhook payload: "+err.Error())
		}

		if event.Type != "user.created" {
			// Other event types are acknowledged and ignored
			return c.JSON(http.StatusOK, map[string]string{"status": "ignored"})
		}

		if event.Data.ID == "" || len(event.Data.EmailAddresses) == 0 {
			return badRequest(c, "Webhook user data missing id or email")
		}

		user, err := repo.UpsertFromWebhook(c.Request().Context(), &event.Data)
		if err != nil {
			logger.Error("Webhook user provisioning failed", map[string]interface{}{
				"request_id":  requestID,
				"external_id": event.Data.ID,
				"error":       err.Error(),
			})
			return internalError(c, "Failed to provision user")
		}

		logger.Info("User provisioned from identity webhook", map[string]interface{}{
			"request_id":  requestID,
			"external_id": user.ExternalID,
			"role":        user.Role,
		})

		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
