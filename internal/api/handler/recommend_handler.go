package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/piyukr2/Bed-Manager/internal/api/middleware"
	"github.com/piyukr2/Bed-Manager/internal/domain"
	"github.com/piyukr2/Bed-Manager/internal/service"

	"github.com/gin-gonic/gin"
)

type RecommendHandler struct {
	recommendService *service.RecommendService
}

func NewRecommendHandler(recommendService *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

// POST /beds/recommend
func (h *RecommendHandler) RecommendBed(c *gin.Context) {
	var req domain.RecommendRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recommendation, alternatives, err := h.recommendService.Recommend(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoBedsAvailable) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":        "No available beds matching criteria",
				"suggestion":   "Check beds under cleaning or contact other wards",
				"alternatives": alternatives,
				"message":      fmt.Sprintf("Requested: Ward=%s, Equipment=%s", orAny(req.Ward), orAny(req.EquipmentType)),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not recommend a bed"})
		return
	}
	c.JSON(http.StatusOK, recommendation)
}

// GET /beds/available?ward=&equipment_type=&urgency=
func (h *RecommendHandler) GetAvailableBeds(c *gin.Context) {
	result, err := h.recommendService.FindAvailable(
		c.Request.Context(),
		middleware.ScopeFromContext(c),
		c.Query("ward"),
		c.Query("equipment_type"),
		c.Query("urgency"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not search available beds"})
		return
	}

	// Plain list unless the urgency fallback kicked in, matching the shape
	// clients expect from the availability search.
	if result.Alternatives == nil {
		if result.Available == nil {
			result.Available = []domain.Bed{}
		}
		c.JSON(http.StatusOK, result.Available)
		return
	}
	c.JSON(http.StatusOK, result)
}

func orAny(value string) string {
	if value == "" {
		return "Any"
	}
	return value
}
