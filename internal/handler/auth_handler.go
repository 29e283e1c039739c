package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/service"
	"github.com/runquest/runquest-backend/pkg/response"
)

// AuthHandler handles registration and token endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Register handles POST /api/v1/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in models.Registration
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, user)
}

// Login handles POST /api/v1/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, pair)
}

// Refresh handles POST /api/v1/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var in refreshRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), in.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, pair)
}
