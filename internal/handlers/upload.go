package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
	"designsight-backend/internal/services"
)

// multipart framing allowance on top of the file limit
const uploadOverhead = 1 << 20

type ImageAPI interface {
	MaxBytes() int64
	Upload(ctx context.Context, in services.UploadInput) (*models.Image, *models.Project, error)
	SignedURL(ctx context.Context, imageID string) (string, *models.Image, error)
	File(ctx context.Context, imageID string) ([]byte, string, error)
}

type UploadHandler struct {
	images ImageAPI
}

func NewUploadHandler(images ImageAPI) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload godoc
// @Summary     Upload an image to a project
// @Description Accepts one image in the multipart field "image". The image is fitted inside
// @Description 1920x1080 without enlargement and stored as JPEG.
// @Tags        upload
// @Accept      multipart/form-data
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       image formData file true "Image file"
// @Success     201 {object} models.Response{data=models.UploadResponse}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/upload/{projectId} [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	maxBytes := h.images.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+uploadOverhead)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(c, "file too large", sizeLimitMessage(maxBytes))
			return
		}
		badRequest(c, "no image file provided", err.Error())
		return
	}
	if fileHeader.Size > maxBytes {
		badRequest(c, "file too large", sizeLimitMessage(maxBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "failed to read upload", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(c, "failed to read upload", err.Error())
		return
	}

	img, project, err := h.images.Upload(c.Request.Context(), services.UploadInput{
		ProjectID:    c.Param("projectId"),
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Data:         data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, models.UploadResponse{Image: *img, Project: project})
}

func sizeLimitMessage(maxBytes int64) string {
	if maxBytes%(1<<20) == 0 {
		return fmt.Sprintf("images are limited to %dMB", maxBytes>>20)
	}
	return fmt.Sprintf("images are limited to %d bytes", maxBytes)
}

// ImageURL godoc
// @Summary     Get a signed image URL
// @Description Issues a fresh time-limited URL for the stored image.
// @Tags        upload
// @Produce     json
// @Param       imageId path string true "Image ID"
// @Success     200 {object} models.Response{data=models.ImageURLResponse}
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/upload/image/{imageId} [get]
func (h *UploadHandler) ImageURL(c *gin.Context) {
	url, img, err := h.images.SignedURL(c.Request.Context(), c.Param("imageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, models.ImageURLResponse{ImageURL: url, Image: *img})
}

// ImageFile godoc
// @Summary     Stream image bytes
// @Tags        upload
// @Produce     image/jpeg
// @Param       imageId path string true "Image ID"
// @Success     200 {file} binary
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/upload/image/{imageId}/file [get]
func (h *UploadHandler) ImageFile(c *gin.Context) {
	data, mimeType, err := h.images.File(c.Request.Context(), c.Param("imageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, mimeType, data)
}
