package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
)

// Recovery turns a panic into the generic failure payload.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal server error",
			Message: "something went wrong",
		})
	})
}
