package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the user id injected by the Session middleware and
// fast-fails with 401 when the request carries no valid session.
func ctxUserID(c echo.Context) (int, error) {
	id, ok := c.Get("user_id").(int)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
