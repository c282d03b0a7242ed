package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	})
}

// enrichmentPaths are the routes that call external AI providers and need
// the extended timeout
var enrichmentPaths = []string{
	"/api/v1/wizard/resume/clean",
	"/api/v1/wizard/avatar/generate",
}

// SelectiveTimeoutConfig applies the default timeout to most routes and an
// extended timeout to enrichment routes. Wizard submissions for the
// resume step also get the extended window because the upload triggers an
// extraction call.
func SelectiveTimeoutConfig(defaultTimeout, enrichmentTimeout time.Duration) echo.MiddlewareFunc {
	short := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: defaultTimeout})
	long := middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: enrichmentTimeout})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		shortNext := short(next)
		longNext := long(next)

		return func(c echo.Context) error {
			if isEnrichmentRequest(c) {
				return longNext(c)
			}
			return shortNext(c)
		}
	}
}

func isEnrichmentRequest(c echo.Context) bool {
	path := c.Request().URL.Path
	for _, p := range enrichmentPaths {
		if path == p {
			return true
		}
	}

	// Resume-upload step submission
	return path == "/api/v1/wizard" && c.Request().Method == "POST" && c.QueryParam("step") == "1"
}
