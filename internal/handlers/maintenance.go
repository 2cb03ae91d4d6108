package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"designsight-backend/internal/models"
)

type MaintenanceAPI interface {
	VerifyImages(ctx context.Context, remove bool) (*models.VerifyImagesReport, error)
}

type MaintenanceHandler struct {
	maintenance MaintenanceAPI
}

func NewMaintenanceHandler(maintenance MaintenanceAPI) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

// VerifyImages godoc
// @Summary     Find image records whose stored object is gone
// @Description With fix=remove the dangling records are dropped from their projects.
// @Tags        maintenance
// @Produce     json
// @Security    Bearer
// @Param       fix query string false "Set to remove to delete dangling records" Enums(remove)
// @Success     200 {object} models.Response{data=models.VerifyImagesReport}
// @Failure     401 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /api/maintenance/images/verify [get]
func (h *MaintenanceHandler) VerifyImages(c *gin.Context) {
	report, err := h.maintenance.VerifyImages(c.Request.Context(), c.Query("fix") == "remove")
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}
