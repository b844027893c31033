package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/ports"
)

// DirectoryHandler serves the public electrician directory.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

type reviewRequest struct {
	Rating  float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Name    string  `json:"name" validate:"required"`
	Comment string  `json:"comment"`
	Date    string  `json:"date"`
}

type reviewResponse struct {
	Message string  `json:"message"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
}

// List returns every listing with contact details and credentials stripped.
//
// @Summary      List electricians
// @Tags         directory
// @Produce      json
// @Success      200  {array}  domain.Listing
// @Router       /api/electricians [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	listings, err := h.directory.Listings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listings)
}

// Get returns a single listing by id.
//
// @Summary      Get an electrician
// @Tags         directory
// @Produce      json
// @Param        id   path      int  true  "Listing id"
// @Success      200  {object}  domain.Listing
// @Failure      404  {object}  map[string]string
// @Router       /api/electricians/{id} [get]
func (h *DirectoryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	listing, err := h.directory.Listing(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listing)
}

// AddReview appends a customer review and returns the recalculated rating.
//
// @Summary      Review an electrician
// @Tags         directory
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Listing id"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  reviewResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/electricians/{id}/review [post]
func (h *DirectoryHandler) AddReview(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rating, count, err := h.directory.AddReview(c.Request().Context(), id, ports.ReviewInput{
		Rating:  req.Rating,
		Name:    req.Name,
		Comment: req.Comment,
		Date:    req.Date,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reviewResponse{
		Message: "review added",
		Rating:  rating,
		Reviews: count,
	})
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
