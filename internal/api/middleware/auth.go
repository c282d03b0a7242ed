package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/pkg/models"
)

// IdentityContextKey is the echo context key holding the authenticated
// identity's external ID
const IdentityContextKey = "identity"

// SessionAuth validates the bearer token on wizard routes and stores the
// identity in the request context. Tokens are HS256 JWTs whose subject is
// the identity provider's stable user ID.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c, "Missing bearer token")
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return unauthorized(c, "Invalid session token")
			}

			claims, ok := token.Claims.(*jwt.StandardClaims)
			if !ok || claims.Subject == "" {
				return unauthorized(c, "Session token missing subject")
			}

			c.Set(IdentityContextKey, claims.Subject)
			return next(c)
		}
	}
}

// IdentityFromContext returns the authenticated identity set by SessionAuth
func IdentityFromContext(c echo.Context) string {
	if identity, ok := c.Get(IdentityContextKey).(string); ok {
		return identity
	}
	return ""
}

func unauthorized(c echo.Context, message string) error {
	requestID, _ := c.Get("request_id").(string)
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:     "unauthorized",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
