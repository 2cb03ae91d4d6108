package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
	"designsight-backend/internal/services"
)

type AnalysisAPI interface {
	Analyze(ctx context.Context, projectID, imageID string) (*services.AnalysisOutcome, error)
	Results(ctx context.Context, projectID, imageID string) ([]models.Feedback, error)
}

type AIHandler struct {
	analysis AnalysisAPI
}

func NewAIHandler(analysis AnalysisAPI) *AIHandler {
	return &AIHandler{analysis: analysis}
}

// Analyze godoc
// @Summary     Run AI analysis on an image
// @Description Annotates the image with the vision provider and stores the synthesized feedback.
// @Description If AI feedback already exists for the image it is returned instead.
// @Tags        ai
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       imageId path string true "Image ID"
// @Success     200 {object} models.Response{data=models.AnalysisResponse}
// @Failure     404 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/ai/analyze/{projectId}/{imageId} [post]
func (h *AIHandler) Analyze(c *gin.Context) {
	outcome, err := h.analysis.Analyze(c.Request.Context(), c.Param("projectId"), c.Param("imageId"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := models.Response{
		Success: true,
		Data:    models.AnalysisResponse{Feedback: outcome.Feedback, Summary: outcome.Summary},
	}
	if outcome.Existing {
		resp.Message = "AI analysis already exists for this image"
	}
	c.JSON(http.StatusOK, resp)
}

// Results godoc
// @Summary     Get stored AI feedback for an image
// @Tags        ai
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       imageId path string true "Image ID"
// @Success     200 {object} models.Response{data=[]models.Feedback}
// @Router      /api/ai/analysis/{projectId}/{imageId} [get]
func (h *AIHandler) Results(c *gin.Context) {
	items, err := h.analysis.Results(c.Request.Context(), c.Param("projectId"), c.Param("imageId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, len(items))
}
