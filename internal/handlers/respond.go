package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
	"designsight-backend/internal/services"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.Response{Success: true, Data: data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, models.Response{Success: true, Data: data, Count: &count})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, models.Response{Success: true, Message: message})
}

func badRequest(c *gin.Context, errMsg, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errMsg, Message: message})
}

// respondError maps a service error onto its HTTP status. Unknown errors get
// the generic payload so internal details stay out of responses.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.Is(err, services.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
	case errors.Is(err, services.ErrImageNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image not found"})
	case errors.Is(err, services.ErrFeedbackNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "feedback not found"})
	case errors.Is(err, services.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "comment not found"})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upstream service failed", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error", Message: "something went wrong"})
	}
}
