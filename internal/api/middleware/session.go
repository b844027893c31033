package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/domain"
	"github.com/sparkconnect/directory/internal/core/ports"
)

// SessionCookie is the name of the session id cookie.
const SessionCookie = "sc_session"

// Session resolves the session cookie and injects the logged-in user id into
// the request context. Requests without a valid session pass through with no
// user id set; handlers that need one enforce it via RequireSession.
func Session(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			userID, err := sessions.UserID(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrNoSession) {
					return next(c)
				}
				return err
			}

			c.Set("user_id", userID)
			c.Set("session_id", cookie.Value)
			return next(c)
		}
	}
}

// RequireSession rejects requests that did not resolve to a logged-in user.
func RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("user_id").(int); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}
