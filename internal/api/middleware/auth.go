package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-service/internal/api/metrics"
	"github.com/inkwell/blog-service/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxToken  = "token"
)

// Auth validates the opaque bearer token against the token store and injects
// the resolved user id (and the raw token, for logout) into the echo context.
// The store stays authoritative: a token cached by a client is re-checked on
// every request.
func Auth(tokens ports.TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}

			userID, err := tokens.Validate(c.Request().Context(), parts[1])
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			c.Set(CtxUserID, userID)
			c.Set(CtxToken, parts[1])

			return next(c)
		}
	}
}
