package http

import (
	"net/http"

	"golang-autoprofit/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStats(base *echo.Group) {
	stats := base.Group("/stats")
	{
		stats.GET("", h.getStats)
		stats.POST("/reset", h.resetDaily)
	}
}

func (h *HttpAPIHandler) getStats(c echo.Context) error {
	stats := h.service.TradingService.GetStats(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Profit stats", stats))
}

func (h *HttpAPIHandler) resetDaily(c echo.Context) error {
	stats, err := h.service.TradingService.ResetDaily(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Daily stats reset", stats))
}
