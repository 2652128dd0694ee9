package dto

import "time"

type TradeDirection string

const (
	DirectionLong  TradeDirection = "long"
	DirectionShort TradeDirection = "short"
)

func (d TradeDirection) IsValid() bool {
	return d == DirectionLong || d == DirectionShort
}

type TradeStatus string

const (
	StatusPending TradeStatus = "pending"
	StatusOpen    TradeStatus = "open"
	StatusClosed  TradeStatus = "closed"
)

type ExitReason string

const (
	ExitGoalReached ExitReason = "goal_reached"
	ExitTakeProfit  ExitReason = "take_profit"
	ExitStopLoss    ExitReason = "stop_loss"
	ExitManual      ExitReason = "manual"
)

// RiskConfig holds the sizing and exit parameters applied to new trades.
// Updates are validated as a whole; an open trade keeps the stop and target
// levels that were frozen for it at open time.
type RiskConfig struct {
	DailyGoal        float64 `json:"daily_goal" mapstructure:"daily_goal" validate:"gt=0"`
	ProfitTarget     float64 `json:"profit_target" mapstructure:"profit_target" validate:"gt=0"`
	StopLoss         float64 `json:"stop_loss" mapstructure:"stop_loss" validate:"gt=0"`
	TrailingStop     bool    `json:"trailing_stop" mapstructure:"trailing_stop"`
	MaxRiskPerTrade  float64 `json:"max_risk_per_trade" mapstructure:"max_risk_per_trade" validate:"gt=0,lte=100"`
	AutoCompound     bool    `json:"auto_compound" mapstructure:"auto_compound"`
	MaxOpenPositions int     `json:"max_open_positions" mapstructure:"max_open_positions" validate:"gte=1"`
}

type TradeCounters struct {
	Total   int     `json:"total"`
	Winners int     `json:"winners"`
	Losers  int     `json:"losers"`
	WinRate float64 `json:"win_rate"`
}

// ProfitStats is the running performance snapshot delivered to subscribers.
type ProfitStats struct {
	Today        float64       `json:"today"`
	Week         float64       `json:"week"`
	Month        float64       `json:"month"`
	Total        float64       `json:"total"`
	GoalProgress float64       `json:"goal_progress"`
	Trades       TradeCounters `json:"trades"`
}

// ProposedTrade is the entry suggestion produced by an external signal
// generator. The engine only applies sizing and risk rules on top of it.
type ProposedTrade struct {
	Symbol     string         `json:"symbol"`
	Direction  TradeDirection `json:"direction"`
	Confidence float64        `json:"confidence"`
}

type PriceTick struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// PerformanceMetrics summarizes a historical-simulation run. It is consumed
// by the live-readiness gate only.
type PerformanceMetrics struct {
	WinRate      float64 `json:"win_rate"`
	ProfitFactor float64 `json:"profit_factor"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	TotalTrades  int     `json:"total_trades"`
}

// StrategyAssessment is the richer answer of the live-readiness gate.
type StrategyAssessment struct {
	ShouldEnableLive bool               `json:"should_enable_live"`
	Summary          PerformanceMetrics `json:"summary"`
}
