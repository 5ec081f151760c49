package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/piyukr2/Bed-Manager/internal/api/middleware"
	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/repository"
	"github.com/piyukr2/Bed-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

type BedHandler struct {
	bedService *service.BedService
}

func NewBedHandler(bedService *service.BedService) *BedHandler {
	return &BedHandler{bedService: bedService}
}

// GET /beds?ward=&status=&floor=&equipment_type=
func (h *BedHandler) GetBeds(c *gin.Context) {
	filter := domain.BedFilter{
		Ward:          c.Query("ward"),
		Status:        domain.BedStatus(c.Query("status")),
		EquipmentType: c.Query("equipment_type"),
	}
	if floorStr := c.Query("floor"); floorStr != "" {
		floor, err := strconv.Atoi(floorStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid floor"})
			return
		}
		filter.Floor = &floor
	}

	beds, err := h.bedService.ListBeds(c.Request.Context(), middleware.ScopeFromContext(c), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list beds"})
		return
	}
	if beds == nil {
		beds = []domain.Bed{}
	}
	c.JSON(http.StatusOK, beds)
}

// GET /beds/:id
func (h *BedHandler) GetBedByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bed ID"})
		return
	}

	bed, err := h.bedService.GetBed(c.Request.Context(), middleware.ScopeFromContext(c), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bed not found"})
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this ward"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch bed"})
		return
	}
	c.JSON(http.StatusOK, bed)
}

// PUT /beds/:id
func (h *BedHandler) UpdateBedStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bed ID"})
		return
	}

	var dto domain.UpdateBedStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bed, err := h.bedService.UpdateBedStatus(
		c.Request.Context(),
		middleware.ScopeFromContext(c),
		middleware.ActorFromContext(c),
		id, dto,
	)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bed not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied to this ward"})
		case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update bed status"})
		}
		return
	}
	c.JSON(http.StatusOK, bed)
}
