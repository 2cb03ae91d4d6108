package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
	"designsight-backend/internal/services"
)

type ExportAPI interface {
	JSON(ctx context.Context, req models.ExportRequest) (*services.Artifact, error)
	PDF(ctx context.Context, req models.ExportRequest) (*services.Artifact, error)
	Preview(ctx context.Context, req models.ExportRequest) (*models.ExportPreview, error)
}

type ExportHandler struct {
	exports ExportAPI
}

func NewExportHandler(exports ExportAPI) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// ExportJSON godoc
// @Summary     Export feedback as JSON
// @Tags        export
// @Accept      json
// @Produce     json
// @Param       request body models.ExportRequest true "Export scope"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/export/json [post]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	h.serve(c, h.exports.JSON)
}

// ExportPDF godoc
// @Summary     Export feedback as a PDF report
// @Tags        export
// @Accept      json
// @Produce     application/pdf
// @Param       request body models.ExportRequest true "Export scope"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/export/pdf [post]
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	h.serve(c, h.exports.PDF)
}

func (h *ExportHandler) serve(c *gin.Context, build func(context.Context, models.ExportRequest) (*services.Artifact, error)) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	artifact, err := build(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Body)
}

// Preview godoc
// @Summary     Preview an export
// @Tags        export
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       imageId path string false "Image ID"
// @Param       role query string false "Role" Enums(designer, reviewer, product_manager, developer)
// @Success     200 {object} models.Response{data=models.ExportPreview}
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/export/preview/{projectId}/{imageId} [get]
func (h *ExportHandler) Preview(c *gin.Context) {
	preview, err := h.exports.Preview(c.Request.Context(), models.ExportRequest{
		ProjectID: c.Param("projectId"),
		ImageID:   c.Param("imageId"),
		Role:      models.Role(c.Query("role")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, preview)
}
