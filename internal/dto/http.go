package dto

import "net/http"

type BaseResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func NewBaseResponse(code int, message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func NewBadRequestResponse(message string) *BaseResponse {
	return NewBaseResponse(http.StatusBadRequest, message, nil)
}

func NewSuccessResponse(message string, data interface{}) *BaseResponse {
	return NewBaseResponse(http.StatusOK, message, data)
}

type OpenTradeRequest struct {
	Symbol    string         `json:"symbol" validate:"required"`
	Direction TradeDirection `json:"direction" validate:"required,oneof=long short"`
	Price     float64        `json:"price" validate:"gt=0"`
	Size      float64        `json:"size" validate:"omitempty,gt=0"`
}

type CloseTradeRequest struct {
	Price float64 `json:"price" validate:"gt=0"`
}

type TickRequest struct {
	Symbol string  `json:"symbol" validate:"required"`
	Price  float64 `json:"price" validate:"gt=0"`
}

type AutoTradeRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

type UpdateBalanceRequest struct {
	Capital float64 `json:"capital" validate:"gt=0"`
}

type BalanceResponse struct {
	Capital float64 `json:"capital"`
}

type GetTradesParam struct {
	IDs         []string
	Symbols     []string
	Statuses    []TradeStatus
	ExitReasons []ExitReason
	Limit       int
}
