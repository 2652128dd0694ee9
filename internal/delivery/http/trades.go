package http

import (
	"errors"
	"net/http"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/engine"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTrades(base *echo.Group) {
	trades := base.Group("/trades")
	{
		trades.GET("", h.getActiveTrades)
		trades.GET("/history", h.getTradeHistory)
		trades.POST("", h.openTrade)
		trades.POST("/auto", h.autoTrade)
		trades.POST("/:id/close", h.closeTrade)
	}
	base.POST("/ticks", h.processTick)
}

func (h *HttpAPIHandler) getActiveTrades(c echo.Context) error {
	trades := h.service.TradingService.GetActiveTrades(c.Request().Context())
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Active trades", trades))
}

func (h *HttpAPIHandler) getTradeHistory(c echo.Context) error {
	param := dto.GetTradesParam{Limit: 100}
	if symbol := c.QueryParam("symbol"); symbol != "" {
		param.Symbols = []string{symbol}
	}

	trades, err := h.service.TradingService.GetTradeHistory(c.Request().Context(), param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to get trade history", nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Trade history", trades))
}

func (h *HttpAPIHandler) openTrade(c echo.Context) error {
	req := new(dto.OpenTradeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradingService.OpenTrade(c.Request().Context(), *req)
	if err != nil {
		return c.JSON(tradeErrorStatus(err), dto.NewBaseResponse(tradeErrorStatus(err), err.Error(), nil))
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "Trade opened", trade))
}

func (h *HttpAPIHandler) autoTrade(c echo.Context) error {
	req := new(dto.AutoTradeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradingService.AutoTrade(c.Request().Context(), req.Symbol)
	if err != nil {
		return c.JSON(tradeErrorStatus(err), dto.NewBaseResponse(tradeErrorStatus(err), err.Error(), nil))
	}
	if trade == nil {
		return c.JSON(http.StatusOK, dto.NewSuccessResponse("No trade opened", nil))
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "Trade opened", trade))
}

func (h *HttpAPIHandler) closeTrade(c echo.Context) error {
	req := new(dto.CloseTradeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	trade, err := h.service.TradingService.CloseTrade(c.Request().Context(), c.Param("id"), req.Price, dto.ExitManual)
	if err != nil {
		return c.JSON(tradeErrorStatus(err), dto.NewBaseResponse(tradeErrorStatus(err), err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Trade closed", trade))
}

func (h *HttpAPIHandler) processTick(c echo.Context) error {
	req := new(dto.TickRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	updated, err := h.service.TradingService.ProcessTick(c.Request().Context(), dto.PriceTick{
		Symbol: req.Symbol,
		Price:  req.Price,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("Tick processed", updated))
}

func tradeErrorStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnknownTrade):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrDuplicatePosition):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidRiskInput), errors.Is(err, engine.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
