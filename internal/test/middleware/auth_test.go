package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designsight-backend/internal/middleware"
)

const testSecret = "test-secret"

func authRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.MaintenanceAuth(secret))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(middleware.SubjectKey)})
	})
	return router
}

func signed(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func serve(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMaintenanceAuth_OpenWithoutSecret(t *testing.T) {
	w := serve(authRouter(""), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceAuth_NoToken(t *testing.T) {
	w := serve(authRouter(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestMaintenanceAuth_BadHeaderFormat(t *testing.T) {
	w := serve(authRouter(testSecret), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid authorization header format")
}

func TestMaintenanceAuth_InvalidToken(t *testing.T) {
	w := serve(authRouter(testSecret), "Bearer invalid-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestMaintenanceAuth_WrongSecret(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "ops"})
	w := serve(authRouter(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token signature is invalid")
}

func TestMaintenanceAuth_Expired(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	w := serve(authRouter(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
}

func TestMaintenanceAuth_RejectsOtherAlgorithms(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"sub": "ops"})
	w := serve(authRouter(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMaintenanceAuth_ValidTokenSetsSubject(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	w := serve(authRouter(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject":"ops"}`, w.Body.String())
}
