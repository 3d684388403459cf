package handlers

import (
	"errors"
	"net/http"
	"time"

	"soletracker_backend/internal/models"
	"soletracker_backend/internal/services"
	"soletracker_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the analytics service.
type DashboardHandler struct {
	analyticsService services.AnalyticsService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(as services.AnalyticsService) *DashboardHandler {
	return &DashboardHandler{analyticsService: as}
}

// GetStats handles fetching windowed statistics. The period query parameter
// selects WEEKLY, MONTHLY or QUARTERLY; MONTHLY is the default.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	period := models.Period(c.DefaultQuery("period", string(models.PeriodMonthly)))
	if !period.Valid() {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid period: "+string(period), "expected WEEKLY, MONTHLY or QUARTERLY"))
		return
	}

	stats, err := h.analyticsService.GetStats(period, time.Now())
	if err != nil {
		utils.LogError(err, "GetStats: Error from analyticsService.GetStats")
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Validation failed: "+err.Error(), err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute statistics.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTrend handles fetching the monthly sales trend series.
func (h *DashboardHandler) GetTrend(c *gin.Context) {
	trend, err := h.analyticsService.GetTrend()
	if err != nil {
		utils.LogError(err, "GetTrend: Error from analyticsService.GetTrend")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to compute trend.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, trend)
}
