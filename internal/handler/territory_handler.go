package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/service"
	"github.com/runquest/runquest-backend/pkg/response"
)

// TerritoryHandler handles HTTP requests for territories
type TerritoryHandler struct {
	territoryService *service.TerritoryService
}

// NewTerritoryHandler creates a new territory handler
func NewTerritoryHandler(territoryService *service.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{
		territoryService: territoryService,
	}
}

// ListTerritories handles GET /api/v1/territories
func (h *TerritoryHandler) ListTerritories(c *gin.Context) {
	var filter models.TerritoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	territories, err := h.territoryService.ListTerritories(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, territories)
}

// GetTerritory handles GET /api/v1/territories/:id
func (h *TerritoryHandler) GetTerritory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	territory, err := h.territoryService.GetTerritory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, territory)
}
