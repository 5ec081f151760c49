package handler

import (
	"net/http"

	"github.com/piyukr2/Bed-Manager/internal/api/middleware"
	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

type OccupancyHandler struct {
	occupancyService *service.OccupancyService
}

func NewOccupancyHandler(occupancyService *service.OccupancyService) *OccupancyHandler {
	return &OccupancyHandler{occupancyService: occupancyService}
}

type statsResponse struct {
	*domain.BedStats
	Alert *domain.Alert `json:"alert"`
}

// GET /beds/stats
// Not a pure read: serving stats also appends a history snapshot and may
// persist a threshold alert.
func (h *OccupancyHandler) GetBedStats(c *gin.Context) {
	stats, alert, err := h.occupancyService.ComputeAndRecordStats(c.Request.Context(), middleware.ScopeFromContext(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not compute bed statistics"})
		return
	}
	c.JSON(http.StatusOK, statsResponse{BedStats: stats, Alert: alert})
}

// GET /beds/history?period=24h|7d|30d
func (h *OccupancyHandler) GetOccupancyHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "24h")

	history, err := h.occupancyService.GetHistory(c.Request.Context(), period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch occupancy history"})
		return
	}
	if history == nil {
		history = []domain.OccupancySnapshot{}
	}
	c.JSON(http.StatusOK, history)
}
