package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runquest/runquest-backend/internal/auth"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/service"
	"github.com/runquest/runquest-backend/pkg/response"
)

// RunHandler handles HTTP requests for runs
type RunHandler struct {
	runService *service.RunService
}

// NewRunHandler creates a new run handler
func NewRunHandler(runService *service.RunService) *RunHandler {
	return &RunHandler{
		runService: runService,
	}
}

// ListRuns handles GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	runs, err := h.runService.ListRuns(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, runs)
}

// CreateRun handles POST /api/v1/runs. Today's run is returned if it already
// exists; the status tells the two cases apart.
func (h *RunHandler) CreateRun(c *gin.Context) {
	run, created, err := h.runService.EnsureOpenForToday(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	if created {
		response.Created(c, run)
		return
	}
	response.Success(c, run)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	run, err := h.runService.GetRun(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, run)
}

// UpdateRun handles PUT and PATCH /api/v1/runs/:id
func (h *RunHandler) UpdateRun(c *gin.Context) {
	respondError(c, h.runService.UpdateRun(c.Request.Context(), auth.UserID(c), pathID(c)))
}

// DeleteRun handles DELETE /api/v1/runs/:id
func (h *RunHandler) DeleteRun(c *gin.Context) {
	respondError(c, h.runService.DeleteRun(c.Request.Context(), auth.UserID(c), pathID(c)))
}

// AddLocation handles POST /api/v1/runs/:id/add_location
func (h *RunHandler) AddLocation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var in models.LocationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	loc, err := h.runService.AddLocation(c.Request.Context(), auth.UserID(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, loc)
}

// FinishRun handles POST /api/v1/runs/:id/finish
func (h *RunHandler) FinishRun(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	run, err := h.runService.Finish(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Response{Code: 0, Message: "run finished", Data: run})
}
