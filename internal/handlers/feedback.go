package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/database"
	"designsight-backend/internal/models"
)

type FeedbackAPI interface {
	Create(ctx context.Context, req models.CreateFeedbackRequest) (*models.Feedback, error)
	Get(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context, filter database.FeedbackFilter) ([]models.Feedback, error)
	Update(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type FeedbackHandler struct {
	feedback FeedbackAPI
}

func NewFeedbackHandler(feedback FeedbackAPI) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// filterFromQuery reads the optional list filters. Enum values are validated
// by the service.
func filterFromQuery(c *gin.Context) (database.FeedbackFilter, error) {
	filter := database.FeedbackFilter{
		ProjectID: c.Query("projectId"),
		ImageID:   c.Query("imageId"),
		Category:  models.Category(c.Query("category")),
		Severity:  models.Severity(c.Query("severity")),
		Status:    models.Status(c.Query("status")),
		Role:      models.Role(c.Query("role")),
	}
	if raw := c.Query("aiGenerated"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.AIGenerated = &v
	}
	return filter, nil
}

// ListByProject godoc
// @Summary     List feedback for a project
// @Description All given filters must match. Role matches when it is among the item's roles.
// @Tags        feedback
// @Produce     json
// @Param       projectId path string true "Project ID"
// @Param       imageId query string false "Image ID"
// @Param       category query string false "Category" Enums(accessibility, visual_hierarchy, content_copy, ui_ux_patterns)
// @Param       severity query string false "Severity" Enums(high, medium, low)
// @Param       status query string false "Status" Enums(open, resolved, dismissed)
// @Param       role query string false "Role" Enums(designer, reviewer, product_manager, developer)
// @Param       aiGenerated query bool false "Only AI generated or only manual items"
// @Success     200 {object} models.Response{data=[]models.Feedback}
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/feedback/project/{projectId} [get]
func (h *FeedbackHandler) ListByProject(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		badRequest(c, "invalid query", err.Error())
		return
	}
	filter.ProjectID = c.Param("projectId")
	h.list(c, filter)
}

// ListByRole godoc
// @Summary     List feedback for a role
// @Tags        feedback
// @Produce     json
// @Param       role path string true "Role" Enums(designer, reviewer, product_manager, developer)
// @Param       projectId query string false "Project ID"
// @Param       imageId query string false "Image ID"
// @Success     200 {object} models.Response{data=[]models.Feedback}
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/feedback/roles/{role} [get]
func (h *FeedbackHandler) ListByRole(c *gin.Context) {
	filter := database.FeedbackFilter{
		ProjectID: c.Query("projectId"),
		ImageID:   c.Query("imageId"),
		Role:      models.Role(c.Param("role")),
	}
	h.list(c, filter)
}

func (h *FeedbackHandler) list(c *gin.Context, filter database.FeedbackFilter) {
	items, err := h.feedback.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, len(items))
}

// GetFeedback godoc
// @Summary     Get a feedback item
// @Tags        feedback
// @Produce     json
// @Param       id path string true "Feedback ID"
// @Success     200 {object} models.Response{data=models.Feedback}
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/feedback/{id} [get]
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	item, err := h.feedback.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

// CreateFeedback godoc
// @Summary     Create a feedback item
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Param       request body models.CreateFeedbackRequest true "Feedback"
// @Success     201 {object} models.Response{data=models.Feedback}
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/feedback [post]
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req models.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	item, err := h.feedback.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, item)
}

// UpdateFeedback godoc
// @Summary     Partially update a feedback item
// @Tags        feedback
// @Accept      json
// @Produce     json
// @Param       id path string true "Feedback ID"
// @Param       request body models.UpdateFeedbackRequest true "Fields to change"
// @Success     200 {object} models.Response{data=models.Feedback}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/feedback/{id} [put]
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	var req models.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	item, err := h.feedback.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

// DeleteFeedback godoc
// @Summary     Delete a feedback item
// @Tags        feedback
// @Produce     json
// @Param       id path string true "Feedback ID"
// @Success     200 {object} models.Response
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/feedback/{id} [delete]
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	if err := h.feedback.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Feedback deleted successfully")
}
