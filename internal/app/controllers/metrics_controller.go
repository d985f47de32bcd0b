package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/ssis/internal/app/services"
	"github.com/yigit/ssis/internal/middleware"
)

// MetricsController serves dashboard figures
type MetricsController struct {
	metricsService services.MetricsService
}

// NewMetricsController creates a new MetricsController
func NewMetricsController(metricsService services.MetricsService) *MetricsController {
	return &MetricsController{
		metricsService: metricsService,
	}
}

// Counts returns table totals. It always answers 200.
// @Summary Record totals
// @Tags metrics
// @Produce json
// @Success 200 {object} dto.CountsResponse
// @Router /metrics/counts [get]
func (c *MetricsController) Counts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.metricsService.Counts(ctx.Request.Context()))
}

// Daily returns per-day creation counts, oldest first
// @Summary Daily creation histogram
// @Tags metrics
// @Produce json
// @Success 200 {array} dto.DailyMetric
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /metrics/daily [get]
func (c *MetricsController) Daily(ctx *gin.Context) {
	metrics, err := c.metricsService.Daily(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, metrics)
}
