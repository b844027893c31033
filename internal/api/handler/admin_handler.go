package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/ports"
)

// AdminHandler serves the administrator-only endpoints.
type AdminHandler struct {
	directory ports.DirectoryService
}

func NewAdminHandler(directory ports.DirectoryService) *AdminHandler {
	return &AdminHandler{directory: directory}
}

// DeleteUser removes an account. The admin cannot delete itself; deleting an
// id that does not exist succeeds.
//
// @Summary      Delete a user account
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actorID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.directory.DeleteUser(c.Request().Context(), actorID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
