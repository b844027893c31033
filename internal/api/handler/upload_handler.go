package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sparkconnect/directory/internal/core/ports"
)

// UploadHandler stores uploaded media files.
type UploadHandler struct {
	media ports.MediaService
}

func NewUploadHandler(media ports.MediaService) *UploadHandler {
	return &UploadHandler{media: media}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts a multipart "file" field and returns the stored web path.
//
// @Summary      Upload a media file
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image or video file"
// @Success      201   {object}  uploadResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer src.Close()

	url, err := h.media.Save(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{URL: url})
}
