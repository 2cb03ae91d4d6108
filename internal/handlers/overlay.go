package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
	"designsight-backend/internal/overlay"
	"designsight-backend/internal/services"
)

type OverlayAPI interface {
	Marks(ctx context.Context, q services.OverlayQuery, selectedID string) ([]overlay.Mark, error)
	Click(ctx context.Context, q services.OverlayQuery, x, y float64) (*models.OverlayClickResponse, error)
}

type OverlayHandler struct {
	overlays OverlayAPI
}

func NewOverlayHandler(overlays OverlayAPI) *OverlayHandler {
	return &OverlayHandler{overlays: overlays}
}

// Marks godoc
// @Summary     Lay out feedback marks for a displayed image
// @Tags        overlay
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       imageId path string true "Image ID"
// @Param       displayWidth query number true "Rendered width in pixels"
// @Param       displayHeight query number true "Rendered height in pixels"
// @Param       selected query string false "Selected feedback ID"
// @Param       category query string false "Category"
// @Param       severity query string false "Severity"
// @Param       status query string false "Status"
// @Param       role query string false "Role"
// @Success     200 {object} models.Response{data=[]overlay.Mark}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/overlay/{projectId}/{imageId} [get]
func (h *OverlayHandler) Marks(c *gin.Context) {
	width, err := strconv.ParseFloat(c.Query("displayWidth"), 64)
	if err != nil {
		badRequest(c, "invalid query", "displayWidth must be a number")
		return
	}
	height, err := strconv.ParseFloat(c.Query("displayHeight"), 64)
	if err != nil {
		badRequest(c, "invalid query", "displayHeight must be a number")
		return
	}

	q := services.OverlayQuery{
		ProjectID:     c.Param("projectId"),
		ImageID:       c.Param("imageId"),
		DisplayWidth:  width,
		DisplayHeight: height,
		Filter: database.FeedbackFilter{
			Category: models.Category(c.Query("category")),
			Severity: models.Severity(c.Query("severity")),
			Status:   models.Status(c.Query("status")),
			Role:     models.Role(c.Query("role")),
		},
	}

	marks, err := h.overlays.Marks(c.Request.Context(), q, c.Query("selected"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, marks, len(marks))
}

// Click godoc
// @Summary     Resolve a click on a displayed image
// @Description Returns the default region for new feedback at the click and the first mark under it.
// @Tags        overlay
// @Accept      json
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       imageId path string true "Image ID"
// @Param       request body models.OverlayClickRequest true "Click"
// @Success     200 {object} models.Response{data=models.OverlayClickResponse}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/overlay/{projectId}/{imageId}/click [post]
func (h *OverlayHandler) Click(c *gin.Context) {
	var req models.OverlayClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	q := services.OverlayQuery{
		ProjectID:     c.Param("projectId"),
		ImageID:       c.Param("imageId"),
		DisplayWidth:  req.DisplayWidth,
		DisplayHeight: req.DisplayHeight,
		Filter:        database.FeedbackFilter{Role: req.Role},
	}

	resp, err := h.overlays.Click(c.Request.Context(), q, req.X, req.Y)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, resp)
}
