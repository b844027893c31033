package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/ports"
)

// UserHandler serves the authenticated account's self-service endpoints.
type UserHandler struct {
	directory ports.DirectoryService
	auth      ports.AuthService
}

func NewUserHandler(directory ports.DirectoryService, auth ports.AuthService) *UserHandler {
	return &UserHandler{directory: directory, auth: auth}
}

type galleryAddRequest struct {
	Items []string `json:"items" validate:"required,min=1"`
}

type galleryRemoveRequest struct {
	Item string `json:"item" validate:"required"`
}

type galleryResponse struct {
	Gallery []string `json:"gallery"`
}

// Update applies a partial profile update to the session user. The payload is
// decoded strictly: only the whitelisted profile fields are accepted, and any
// unknown key rejects the request.
//
// @Summary      Update the session user's profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      ports.ListingUpdate  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/user/update [put]
func (h *UserHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var update ports.ListingUpdate
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.directory.UpdateProfile(c.Request().Context(), userID, update); err != nil {
		return err
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "profile updated", User: user})
}

// AddGalleryItems appends uploaded media paths to the session user's gallery.
//
// @Summary      Add gallery items
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      galleryAddRequest  true  "Media paths"
// @Success      200   {object}  galleryResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/user/gallery [post]
func (h *UserHandler) AddGalleryItems(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req galleryAddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gallery, err := h.directory.AddGalleryItems(c.Request().Context(), userID, req.Items)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, galleryResponse{Gallery: gallery})
}

// RemoveGalleryItem deletes one media path from the session user's gallery.
// Removing a path that is not present leaves the gallery unchanged.
//
// @Summary      Remove a gallery item
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      galleryRemoveRequest  true  "Media path"
// @Success      200   {object}  galleryResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/user/gallery [delete]
func (h *UserHandler) RemoveGalleryItem(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req galleryRemoveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	gallery, err := h.directory.RemoveGalleryItem(c.Request().Context(), userID, req.Item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, galleryResponse{Gallery: gallery})
}
