package http

import (
	"net/http"

	"golang-autoprofit/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupLiveReadiness(base *echo.Group) {
	base.POST("/live-readiness", h.assessLiveReadiness)
}

// assessLiveReadiness evaluates historical-simulation metrics against the
// promotion thresholds.
func (h *HttpAPIHandler) assessLiveReadiness(c echo.Context) error {
	req := new(dto.PerformanceMetrics)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	assessment := h.service.TradingService.Assess(*req)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Live readiness assessment", assessment))
}
