package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
)

type CommentAPI interface {
	Create(ctx context.Context, req models.CreateCommentRequest) (*models.Comment, error)
	Thread(ctx context.Context, feedbackID string, role models.Role) ([]*models.CommentNode, int, error)
	UpdateContent(ctx context.Context, id string, req models.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentsHandler struct {
	comments CommentAPI
}

func NewCommentsHandler(comments CommentAPI) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// Thread godoc
// @Summary     Get the comment tree for a feedback item
// @Description Count is the number of comments in the tree, not the number of roots.
// @Tags        comments
// @Produce     json
// @Param       feedbackId path string true "Feedback ID"
// @Param       role query string false "Role" Enums(designer, reviewer, product_manager, developer)
// @Success     200 {object} models.Response{data=[]models.CommentNode}
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/comments/feedback/{feedbackId} [get]
func (h *CommentsHandler) Thread(c *gin.Context) {
	roots, count, err := h.comments.Thread(c.Request.Context(), c.Param("feedbackId"), models.Role(c.Query("role")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, roots, count)
}

// CreateComment godoc
// @Summary     Create a comment
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       request body models.CreateCommentRequest true "Comment"
// @Success     201 {object} models.Response{data=models.Comment}
// @Failure     400 {object} models.ErrorResponse
// @Router      /api/comments [post]
func (h *CommentsHandler) CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary     Edit comment content
// @Tags        comments
// @Accept      json
// @Produce     json
// @Param       id path string true "Comment ID"
// @Param       request body models.UpdateCommentRequest true "Content"
// @Success     200 {object} models.Response{data=models.Comment}
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/comments/{id} [put]
func (h *CommentsHandler) UpdateComment(c *gin.Context) {
	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err.Error())
		return
	}

	comment, err := h.comments.UpdateContent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary     Delete a comment
// @Description Replies are not removed; they surface as roots on the next read.
// @Tags        comments
// @Produce     json
// @Param       id path string true "Comment ID"
// @Success     200 {object} models.Response
// @Failure     404 {object} models.ErrorResponse
// @Router      /api/comments/{id} [delete]
func (h *CommentsHandler) DeleteComment(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Comment deleted successfully")
}
