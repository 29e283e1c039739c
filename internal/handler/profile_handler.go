package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/auth"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/service"
	"github.com/runquest/runquest-backend/pkg/response"
)

// ProfileHandler serves the authenticated user's own profile
type ProfileHandler struct {
	userService *service.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
	}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile handles PUT and PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var in models.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, user)
}
