package http

import (
	"net/http"

	"golang-autoprofit/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBalance(base *echo.Group) {
	balance := base.Group("/balance")
	{
		balance.GET("", h.getBalance)
		balance.PUT("", h.updateBalance)
	}
}

func (h *HttpAPIHandler) getBalance(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Balance", dto.BalanceResponse{
		Capital: h.service.TradingService.GetCapital(),
	}))
}

// updateBalance resets the working capital and the sizing base. Intended for
// funding changes, not for correcting P&L.
func (h *HttpAPIHandler) updateBalance(c echo.Context) error {
	req := new(dto.UpdateBalanceRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	h.service.TradingService.SetCapital(req.Capital)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Balance updated", dto.BalanceResponse{
		Capital: h.service.TradingService.GetCapital(),
	}))
}
