package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

// RequireAdmin restricts a route group to the admin account. It runs after
// Session and RequireSession, so a user id is guaranteed to be present.
func RequireAdmin(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := c.Get("user_id").(int)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user, err := auth.CurrentUser(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if user == nil || user.Email != domain.AdminEmail {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
