package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/auth"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/service"
	"github.com/runquest/runquest-backend/pkg/response"
)

// LocationHandler handles HTTP requests for run locations
type LocationHandler struct {
	runService *service.RunService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(runService *service.RunService) *LocationHandler {
	return &LocationHandler{
		runService: runService,
	}
}

// ListLocations handles GET /api/v1/locations
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.runService.ListLocations(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, locations)
}

// CreateLocation handles POST /api/v1/locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var in models.NewLocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	loc, err := h.runService.AddLocation(c.Request.Context(), auth.UserID(c), in.Run, in.LocationInput)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, loc)
}

// GetLocation handles GET /api/v1/locations/:id
func (h *LocationHandler) GetLocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	loc, err := h.runService.GetLocation(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, loc)
}

// UpdateLocation handles PUT and PATCH /api/v1/locations/:id
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	respondError(c, h.runService.UpdateLocation(c.Request.Context(), auth.UserID(c), pathID(c)))
}

// DeleteLocation handles DELETE /api/v1/locations/:id
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	respondError(c, h.runService.DeleteLocation(c.Request.Context(), auth.UserID(c), pathID(c)))
}
