package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"designsight-backend/internal/handlers"
	"designsight-backend/internal/models"
	"designsight-backend/internal/services"
)

func aiRouter(api *analysisAPI) *gin.Engine {
	h := handlers.NewAIHandler(api)
	r := newRouter()
	r.POST("/api/ai/analyze/:projectId/:imageId", h.Analyze)
	r.GET("/api/ai/analysis/:projectId/:imageId", h.Results)
	return r
}

func TestAI_AnalyzeExistingSetsMessage(t *testing.T) {
	api := new(analysisAPI)
	api.On("Analyze", mock.Anything, "p1", "i1").Return(&services.AnalysisOutcome{
		Feedback: []models.Feedback{{ID: "f1", AIGenerated: true}},
		Summary:  "Previous analysis found",
		Existing: true,
	}, nil)

	w := doJSON(aiRouter(api), http.MethodPost, "/api/ai/analyze/p1/i1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "AI analysis already exists for this image", body["message"])
	assert.Equal(t, "Previous analysis found", body["data"].(map[string]interface{})["summary"])
}

func TestAI_AnalyzeFreshHasNoMessage(t *testing.T) {
	api := new(analysisAPI)
	api.On("Analyze", mock.Anything, "p1", "i1").Return(&services.AnalysisOutcome{
		Feedback: []models.Feedback{},
		Summary:  "AI analysis completed",
	}, nil)

	w := doJSON(aiRouter(api), http.MethodPost, "/api/ai/analyze/p1/i1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w), "message")
}

func TestAI_AnalyzeUpstreamFailure(t *testing.T) {
	api := new(analysisAPI)
	api.On("Analyze", mock.Anything, "p1", "i1").
		Return(nil, fmt.Errorf("%w: AI analysis failed: image unavailable", services.ErrUpstream))

	w := doJSON(aiRouter(api), http.MethodPost, "/api/ai/analyze/p1/i1", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAI_Results(t *testing.T) {
	api := new(analysisAPI)
	api.On("Results", mock.Anything, "p1", "i1").Return([]models.Feedback{{ID: "a"}}, nil)

	w := doJSON(aiRouter(api), http.MethodGet, "/api/ai/analysis/p1/i1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}
