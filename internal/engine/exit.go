package engine

import (
	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"
)

// ExitDecision is the verdict of the exit evaluator for one tick.
type ExitDecision struct {
	Close  bool
	Reason dto.ExitReason
}

// EvaluateExit decides whether an open trade should be closed. First match
// wins: daily goal reached, then take profit, then stop loss.
//
// With trailing enabled the stop-loss rule fires against a ratcheted
// threshold: once the trade has been in profit, the threshold is the highest
// unrealized P&L percentage seen minus the stop-loss width. The threshold
// never loosens below the configured stop.
func EvaluateExit(t *model.Trade, cfg dto.RiskConfig, todayPL float64) ExitDecision {
	if todayPL >= cfg.DailyGoal {
		return ExitDecision{Close: true, Reason: dto.ExitGoalReached}
	}

	if t.ProfitLossPercent >= cfg.ProfitTarget {
		return ExitDecision{Close: true, Reason: dto.ExitTakeProfit}
	}

	stopThreshold := -cfg.StopLoss
	if cfg.TrailingStop && t.HighestPLPercent > 0 {
		trailed := t.HighestPLPercent - cfg.StopLoss
		if trailed > stopThreshold {
			stopThreshold = trailed
		}
	}
	if t.ProfitLossPercent <= stopThreshold {
		return ExitDecision{Close: true, Reason: dto.ExitStopLoss}
	}

	return ExitDecision{}
}
