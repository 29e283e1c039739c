package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/auth"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/service"
	"github.com/runquest/runquest-backend/pkg/response"
)

// StatsHandler handles HTTP requests for statistics
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetRunStatistics handles GET /api/v1/stats
func (h *StatsHandler) GetRunStatistics(c *gin.Context) {
	var filter models.StatsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.statsService.GetRunStatistics(c.Request.Context(), auth.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, result)
}
