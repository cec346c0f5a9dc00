package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplexhr/hr-console/internal/core/ports"
)

// Session guards protected routes. The check runs before the handler, so no
// protected bytes are ever written for an anonymous caller: the client is
// told to go through the login screen instead.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.Authorized(c.Request().Context()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
