package engine

import (
	"time"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"
)

// applyClosedLocked folds one realized P&L into the running statistics.
// A P&L of exactly zero counts in the total but is neither a winner nor a
// loser. Caller must hold e.mu.
func (e *Engine) applyClosedLocked(profitLoss float64) {
	e.stats.Today += profitLoss
	e.stats.Week += profitLoss
	e.stats.Month += profitLoss
	e.stats.Total += profitLoss

	e.stats.Trades.Total++
	if profitLoss > 0 {
		e.stats.Trades.Winners++
	} else if profitLoss < 0 {
		e.stats.Trades.Losers++
	}

	e.stats.Trades.WinRate = winRate(e.stats.Trades.Winners, e.stats.Trades.Total)
	e.stats.GoalProgress = e.stats.Today / e.cfg.DailyGoal * 100
}

// GetStats returns the current statistics snapshot.
func (e *Engine) GetStats() dto.ProfitStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// ResetDaily zeroes the today bucket and goal progress at a trading-day
// boundary. Week, month, total and the trade counters are untouched.
// Subscribers receive the reset snapshot.
func (e *Engine) ResetDaily() dto.ProfitStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.Today = 0
	e.stats.GoalProgress = 0
	e.notifyLocked()
	return e.stats
}

// winRate never returns NaN: zero trades means a zero rate.
func winRate(winners, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(winners) / float64(total) * 100
}

// RecomputeStats rebuilds ProfitStats from scratch over a closed-trade
// history. The incremental statistics maintained by the engine must never
// diverge from this.
func RecomputeStats(closed []model.Trade, dailyGoal float64, now time.Time) dto.ProfitStats {
	var stats dto.ProfitStats

	year, week := now.ISOWeek()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, t := range closed {
		if t.Status != dto.StatusClosed || t.ClosedAt == nil {
			continue
		}

		stats.Total += t.ProfitLoss
		if !t.ClosedAt.Before(dayStart) {
			stats.Today += t.ProfitLoss
		}
		if cy, cw := t.ClosedAt.ISOWeek(); cy == year && cw == week {
			stats.Week += t.ProfitLoss
		}
		if t.ClosedAt.Year() == now.Year() && t.ClosedAt.Month() == now.Month() {
			stats.Month += t.ProfitLoss
		}

		stats.Trades.Total++
		if t.ProfitLoss > 0 {
			stats.Trades.Winners++
		} else if t.ProfitLoss < 0 {
			stats.Trades.Losers++
		}
	}

	stats.Trades.WinRate = winRate(stats.Trades.Winners, stats.Trades.Total)
	if dailyGoal > 0 {
		stats.GoalProgress = stats.Today / dailyGoal * 100
	}
	return stats
}
