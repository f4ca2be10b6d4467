package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h4d1s/AvtoNetApi/internal/api/middleware"
	"github.com/h4d1s/AvtoNetApi/internal/auth"
)

const testSecret = "test-secret"

func setupAuthEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", middleware.AuthMiddleware(testSecret))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString(middleware.ContextKeyUserID)})
	})
	admin := protected.Group("/admin", middleware.AdminMiddleware())
	admin.GET("/users", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := auth.GenerateJWT("u1", false, testSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	setupAuthEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	router := setupAuthEngine()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/me", nil)
	req2.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	token, err := auth.GenerateJWT("u1", false, "other-secret", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	setupAuthEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware_RequiresAdminClaim(t *testing.T) {
	router := setupAuthEngine()

	userToken, err := auth.GenerateJWT("u1", false, testSecret, time.Hour)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := auth.GenerateJWT("a1", true, testSecret, time.Hour)
	require.NoError(t, err)
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/admin/users", nil)
	req2.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
}
