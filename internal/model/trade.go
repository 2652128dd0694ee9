package model

import (
	"time"

	"golang-autoprofit/internal/dto"
)

// Trade is a position tracked by the engine. Open trades live in memory and
// are owned exclusively by the engine; closed trades are persisted for
// statistics and audit and never mutate again.
type Trade struct {
	ID                string             `gorm:"primaryKey" json:"id"`
	Symbol            string             `gorm:"not null" json:"symbol"`
	Direction         dto.TradeDirection `gorm:"not null" json:"direction"`
	EntryPrice        float64            `gorm:"not null" json:"entry_price"`
	CurrentPrice      float64            `gorm:"not null" json:"current_price"`
	Size              float64            `gorm:"not null" json:"size"`
	StopLossPrice     float64            `gorm:"not null" json:"stop_loss_price"`
	TakeProfitPrice   float64            `gorm:"not null" json:"take_profit_price"`
	ProfitLoss        float64            `json:"profit_loss"`
	ProfitLossPercent float64            `json:"profit_loss_percent"`
	HighestPLPercent  float64            `json:"highest_pl_percent"`
	Status            dto.TradeStatus    `gorm:"not null" json:"status"`
	ExitReason        dto.ExitReason     `json:"exit_reason"`
	OpenedAt          time.Time          `gorm:"not null" json:"opened_at"`
	ClosedAt          *time.Time         `json:"closed_at"`
	CreatedAt         time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

func (t *Trade) IsOpen() bool {
	return t.Status == dto.StatusOpen
}
