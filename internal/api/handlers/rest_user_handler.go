package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/h4d1s/AvtoNetApi/internal/api/middleware"
	"github.com/h4d1s/AvtoNetApi/internal/services"
)

const defaultUserPageSize = 10

// RestUserHandler handles REST requests for accounts.
type RestUserHandler struct {
	userService services.IUserService
}

// NewRestUserHandler creates a new RestUserHandler.
func NewRestUserHandler(userService services.IUserService) *RestUserHandler {
	return &RestUserHandler{userService: userService}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PhoneNumber string `json:"phone_number"`
}

// Register handles POST /api/user/register.
func (h *RestUserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Street:      req.Street,
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/user/login.
func (h *RestUserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": services.ErrInvalidCredentials.Error()})
			return
		}
		respondError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "id": user.ID, "is_admin": user.IsAdmin})
}

// CurrentUserID handles GET /api/user/currentUserId.
func (h *RestUserHandler) CurrentUserID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"id": c.GetString(middleware.ContextKeyUserID)})
}

// GetUsers handles GET /api/users. Admin only; the browsing admin is excluded
// from the page and the paging metadata goes out in X-Pagination.
func (h *RestUserHandler) GetUsers(c *gin.Context) {
	page := 1
	if p, err := intQuery(c, "page"); err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	} else if p != nil {
		page = *p
	}
	pageSize := defaultUserPageSize
	if ps, err := intQuery(c, "pageSize"); err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	} else if ps != nil {
		pageSize = *ps
	}

	callerID := c.GetString(middleware.ContextKeyUserID)
	users, meta, err := h.userService.FindPage(c.Request.Context(), callerID, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to retrieve users")
		return
	}

	setPaginationHeader(c, meta)
	c.JSON(http.StatusOK, users)
}

// authorizeAccountAccess allows the account owner or an admin through.
func authorizeAccountAccess(c *gin.Context, accountID string) bool {
	if accountID != c.GetString(middleware.ContextKeyUserID) && !c.GetBool(middleware.ContextKeyIsAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only modify your own account"})
		return false
	}
	return true
}

type updateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PhoneNumber string `json:"phone_number"`
}

// UpdateUser handles PUT /api/user/:id.
func (h *RestUserHandler) UpdateUser(c *gin.Context) {
	accountID := c.Param("id")
	if !authorizeAccountAccess(c, accountID) {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}

	err := h.userService.UpdateProfile(c.Request.Context(), accountID, services.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Street:      req.Street,
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUser handles DELETE /api/user/:id.
func (h *RestUserHandler) DeleteUser(c *gin.Context) {
	accountID := c.Param("id")
	if !authorizeAccountAccess(c, accountID) {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), accountID); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
