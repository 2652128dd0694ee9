package http

import (
	"net/http"

	"golang-autoprofit/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupConfig(base *echo.Group) {
	cfg := base.Group("/config")
	{
		cfg.GET("", h.getConfig)
		cfg.PUT("", h.updateConfig)
	}
}

func (h *HttpAPIHandler) getConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Risk config", h.service.TradingService.GetConfig()))
}

// updateConfig replaces the whole risk configuration. Partial merges are
// intentionally not supported; the full struct is validated as one unit.
func (h *HttpAPIHandler) updateConfig(c echo.Context) error {
	req := new(dto.RiskConfig)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.service.TradingService.UpdateConfig(*req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Config updated", h.service.TradingService.GetConfig()))
}
