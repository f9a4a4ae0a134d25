package handler

import (
	"io"
	"log/slog"
	"net/http"

	"lumera/internal/delivery/api/response"
	domainerrors "lumera/internal/domain/errors"
	"lumera/internal/errors"
	"lumera/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const mediaCacheControl = "public, max-age=31536000, immutable"

// MediaHandlerParams holds dependencies for MediaHandler, injected by Fx.
type MediaHandlerParams struct {
	fx.In

	MediaUC usecase.MediaUsecase
	Logger  *slog.Logger
}

// MediaHandler serves image uploads and downloads.
type MediaHandler struct {
	mediaUC usecase.MediaUsecase
	logger  *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler.
func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{
		mediaUC: params.MediaUC,
		logger:  params.Logger,
	}
}

// Upload handles a multipart upload with a "file" part and optional alt, caption and category fields.
func (h *MediaHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domainerrors.NewValidationError(map[string]string{"file": "required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "failed to read upload")
	}

	media, err := h.mediaUC.Upload(c.Request().Context(), &usecase.UploadMediaInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Data:        data,
		Alt:         c.FormValue("alt"),
		Caption:     c.FormValue("caption"),
		Category:    c.FormValue("category"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, media)
}

// View streams the stored bytes with a long-lived cache header.
func (h *MediaHandler) View(c echo.Context) error {
	media, reader, err := h.mediaUC.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer reader.Close()

	c.Response().Header().Set("Cache-Control", mediaCacheControl)

	return c.Stream(http.StatusOK, media.MimeType, reader)
}

func (h *MediaHandler) Delete(c echo.Context) error {
	if err := h.mediaUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Media deleted successfully")
}
