package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ServiceKey guards service-to-service endpoints with a shared secret. The
// caller must present the key as a bearer token; anything else is a 401.
func ServiceKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			authHeader := c.Request().Header.Get("Authorization")
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				token = strings.TrimPrefix(authHeader, "bearer ")
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(key)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}
