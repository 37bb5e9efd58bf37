package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/erpdash/user-directory/internal/core/domain"
)

// ctxSession extracts the session injected by the Auth middleware,
// failing with 401 when the middleware did not run on this route.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, _ := c.Get("session").(*domain.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return session, nil
}
