package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"designsight-backend/internal/handlers"
	"designsight-backend/internal/models"
)

func TestMaintenance_FixRemove(t *testing.T) {
	api := new(maintenanceAPI)
	api.On("VerifyImages", mock.Anything, true).Return(&models.VerifyImagesReport{Bucket: "designsight", RemovedTotal: 2, Details: []models.ProjectMissingImages{}}, nil)
	api.On("VerifyImages", mock.Anything, false).Return(&models.VerifyImagesReport{Bucket: "designsight", Details: []models.ProjectMissingImages{}}, nil)

	r := newRouter()
	r.GET("/api/maintenance/images/verify", handlers.NewMaintenanceHandler(api).VerifyImages)

	w := doJSON(r, http.MethodGet, "/api/maintenance/images/verify?fix=remove", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["data"].(map[string]interface{})["removedTotal"])

	w = doJSON(r, http.MethodGet, "/api/maintenance/images/verify?fix=yes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	api.AssertExpectations(t)
}
