package middleware

import (
	"net/http"
	"strings"
	"time"

	"talentmesh-onboarding/pkg/models"
	"talentmesh-onboarding/pkg/utils"

	"github.com/labstack/echo/v4"
)

// RequestValidation middleware validates incoming requests
func RequestValidation(maxUploadMB int) echo.MiddlewareFunc {
	if maxUploadMB <= 0 {
		maxUploadMB = 8
	}
	uploadLimit := int64(maxUploadMB) * 1024 * 1024

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Add request ID to context
			requestID := utils.GenerateRequestID()
			c.Set("request_id", requestID)
			c.Response().Header().Set("X-Request-ID", requestID)

			// Content length validation for POST requests. Multipart
			// uploads (resume files) get the larger configured limit.
			if c.Request().Method == http.MethodPost {
				limit := int64(1024 * 1024) // 1MB for JSON and form bodies
				if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
					limit = uploadLimit
				}

				if c.Request().ContentLength > limit {
					return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
						Error:     "request_too_large",
						Message:   "Request body too large",
						RequestID: requestID,
						Timestamp: time.Now(),
					})
				}
			}

			return next(c)
		}
	}
}
