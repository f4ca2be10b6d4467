package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/h4d1s/AvtoNetApi/internal/api/handlers"
	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/services"
)

func setupUserRouter(userService *MockUserService, userID string, isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewRestUserHandler(userService)

	r.POST("/api/user/register", h.Register)
	r.POST("/api/user/login", h.Login)

	protected := r.Group("/", stubAuth(userID, isAdmin))
	protected.GET("/api/user/currentUserId", h.CurrentUserID)
	protected.GET("/api/users", h.GetUsers)
	protected.PUT("/api/user/:id", h.UpdateUser)
	protected.DELETE("/api/user/:id", h.DeleteUser)
	return r
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func TestRegister(t *testing.T) {
	userService := new(MockUserService)
	userService.On("Register", mock.Anything, mock.MatchedBy(func(input services.RegisterInput) bool {
		return input.Email == "jane@example.com" && input.Password == "correct-horse"
	})).Return(&models.User{ID: "u1", Email: "jane@example.com"}, nil)

	router := setupUserRouter(userService, "", false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/user/register", jsonBody(t, gin.H{
		"email": "jane@example.com", "password": "correct-horse", "first_name": "Jane",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRegister_MissingFields(t *testing.T) {
	userService := new(MockUserService)
	router := setupUserRouter(userService, "", false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/user/register", jsonBody(t, gin.H{"email": "jane@example.com"}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	userService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userService := new(MockUserService)
	userService.On("Register", mock.Anything, mock.Anything).Return(nil, models.ErrConflict)

	router := setupUserRouter(userService, "", false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/user/register", jsonBody(t, gin.H{
		"email": "jane@example.com", "password": "correct-horse",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	userService := new(MockUserService)
	userService.On("Login", mock.Anything, "jane@example.com", "correct-horse").
		Return("signed-token", &models.User{ID: "u1", IsAdmin: true}, nil)

	router := setupUserRouter(userService, "", false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/user/login", jsonBody(t, gin.H{
		"email": "jane@example.com", "password": "correct-horse",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp["token"])
	assert.Equal(t, "u1", resp["id"])
	assert.Equal(t, true, resp["is_admin"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	userService := new(MockUserService)
	userService.On("Login", mock.Anything, "jane@example.com", "wrong").
		Return("", nil, services.ErrInvalidCredentials)

	router := setupUserRouter(userService, "", false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/user/login", jsonBody(t, gin.H{
		"email": "jane@example.com", "password": "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUserID(t *testing.T) {
	userService := new(MockUserService)
	router := setupUserRouter(userService, "u42", false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/user/currentUserId", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u42")
}

func TestGetUsers_ExcludesCallerAndSetsPaginationHeader(t *testing.T) {
	userService := new(MockUserService)
	userService.On("FindPage", mock.Anything, "admin-1", 1, 10).
		Return([]models.User{{ID: "u2", Email: "other@example.com"}}, models.NewPaginationMetadata(21, 1, 10), nil)

	router := setupUserRouter(userService, "admin-1", true)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/users", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var meta models.PaginationMetadata
	require.NoError(t, json.Unmarshal([]byte(w.Header().Get("X-Pagination")), &meta))
	assert.EqualValues(t, 21, meta.TotalCount)
	assert.Equal(t, 3, meta.TotalPages)

	assert.NotContains(t, w.Body.String(), "password", "hashes must never serialize")
}

func TestUpdateUser_SelfAllowed(t *testing.T) {
	userService := new(MockUserService)
	userService.On("UpdateProfile", mock.Anything, "u1", mock.MatchedBy(func(input services.UpdateProfileInput) bool {
		return input.City == "Maribor"
	})).Return(nil)

	router := setupUserRouter(userService, "u1", false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/user/u1", jsonBody(t, gin.H{"city": "Maribor"}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateUser_StrangerForbidden(t *testing.T) {
	userService := new(MockUserService)
	router := setupUserRouter(userService, "stranger", false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/user/u1", jsonBody(t, gin.H{"city": "Maribor"}))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	userService.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteUser_AdminAllowed(t *testing.T) {
	userService := new(MockUserService)
	userService.On("Delete", mock.Anything, "u1").Return(nil)

	router := setupUserRouter(userService, "admin-1", true)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/user/u1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteUser_NotFound(t *testing.T) {
	userService := new(MockUserService)
	userService.On("Delete", mock.Anything, "u1").Return(models.ErrNotFound)

	router := setupUserRouter(userService, "u1", false)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/api/user/u1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
