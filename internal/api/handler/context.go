package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-service/internal/api/middleware"
)

// ctxUserID extracts the user id injected by the Auth middleware. Presence
// proves the middleware ran; a missing id on a protected route means the
// route was wired without it — fail closed with 401.
func ctxUserID(c echo.Context) (int64, error) {
	userID, ok := c.Get(middleware.CtxUserID).(int64)
	if !ok || userID == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
	}
	return userID, nil
}

// ctxToken extracts the raw bearer token, needed by logout to revoke it.
func ctxToken(c echo.Context) (string, error) {
	token, ok := c.Get(middleware.CtxToken).(string)
	if !ok || token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthenticated.")
	}
	return token, nil
}
