package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/project-dashboard-api/internal/errors"
	"github.com/yukikurage/project-dashboard-api/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name      string  `json:"name" binding:"required"`
		Email     string  `json:"email" binding:"required"`
		Role      string  `json:"role" binding:"required"`
		AvatarURL *string `json:"avatar_url"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser returns a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	type UpdateUserRequest struct {
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		Role      *string `json:"role"`
		AvatarURL *string `json:"avatar_url"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(c.Param("id"), services.UpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoUpdateData):
			apierrors.BadRequest(c, "No update data provided")
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		default:
			apierrors.InternalError(c, "Failed to update user")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
