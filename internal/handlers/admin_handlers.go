package handlers

import (
	"errors"
	"net/http"

	"github.com/epeers/sqglp/internal/models"
	"github.com/epeers/sqglp/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AdminHandler handles admin endpoints
type AdminHandler struct {
	pipelineSvc *services.PipelineService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(pipelineSvc *services.PipelineService) *AdminHandler {
	return &AdminHandler{
		pipelineSvc: pipelineSvc,
	}
}

// RunPipeline handles POST /admin/run
// @Summary Run the screener
// @Description Resolve the universe, fetch and score every ticker, and replace the result table. Blocks until the run finishes.
// @Tags admin
// @Produce json
// @Param X-Admin-Token header string false "Required when ADMIN_TOKEN is set"
// @Success 200 {object} models.RunSummary
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/run [post]
func (h *AdminHandler) RunPipeline(c *gin.Context) {
	run, err := h.pipelineSvc.Run(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRunInProgress):
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "conflict",
				Message: err.Error(),
			})
		case errors.Is(err, services.ErrUniverseEmpty), errors.Is(err, services.ErrNoResults):
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "no_results",
				Message: err.Error(),
			})
		default:
			log.Errorf("Pipeline run failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "internal_error",
				Message: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, run)
}
