package engine

import (
	"fmt"
	"math/rand"
	"time"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"
	"golang-autoprofit/pkg/logger"
	"golang-autoprofit/pkg/utils"
)

// OpenTrade registers a new position. Stop-loss and take-profit prices are
// computed from the current configuration and frozen for the trade's
// lifetime; later config changes do not retroactively alter them.
func (e *Engine) OpenTrade(symbol string, direction dto.TradeDirection, price, size float64) (*model.Trade, error) {
	if symbol == "" || !direction.IsValid() || price <= 0 || size <= 0 {
		return nil, fmt.Errorf("%w: symbol=%q direction=%q price=%.4f size=%.4f", ErrInvalidRiskInput, symbol, direction, price, size)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.active) >= e.cfg.MaxOpenPositions {
		return nil, fmt.Errorf("%w: concurrent position limit of %d reached", ErrDuplicatePosition, e.cfg.MaxOpenPositions)
	}
	for _, t := range e.active {
		if t.Symbol == symbol {
			return nil, fmt.Errorf("%w: open trade already exists for %s", ErrDuplicatePosition, symbol)
		}
	}

	trade := &model.Trade{
		ID:           newTradeID(e.now()),
		Symbol:       symbol,
		Direction:    direction,
		EntryPrice:   price,
		CurrentPrice: price,
		Size:         size,
		Status:       dto.StatusPending,
		OpenedAt:     e.now(),
	}

	if direction == dto.DirectionLong {
		trade.StopLossPrice = price * (1 - e.cfg.StopLoss/100)
		trade.TakeProfitPrice = price * (1 + e.cfg.ProfitTarget/100)
	} else {
		trade.StopLossPrice = price * (1 + e.cfg.StopLoss/100)
		trade.TakeProfitPrice = price * (1 - e.cfg.ProfitTarget/100)
	}

	trade.Status = dto.StatusOpen
	e.active[trade.ID] = trade

	e.log.Info("Trade opened",
		logger.StringField("trade_id", trade.ID),
		logger.StringField("symbol", symbol),
		logger.StringField("direction", string(direction)),
		logger.Float64Field("entry_price", price),
		logger.Float64Field("size", size),
		logger.Float64Field("stop_loss_price", trade.StopLossPrice),
		logger.Float64Field("take_profit_price", trade.TakeProfitPrice),
	)

	snapshot := *trade
	return &snapshot, nil
}

// Tick updates an open trade with a new market price, recomputes its P&L
// and consults the exit evaluator. A tick for an unknown or already-closed
// trade is a silent no-op so that a straggler racing a close or a
// cancellation never errors.
func (e *Engine) Tick(tradeID string, currentPrice float64) (*model.Trade, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	trade, ok := e.active[tradeID]
	if !ok || trade.Status != dto.StatusOpen {
		return nil, nil
	}

	trade.CurrentPrice = currentPrice
	applyUnrealizedPL(trade, currentPrice)

	if trade.ProfitLossPercent > trade.HighestPLPercent {
		trade.HighestPLPercent = trade.ProfitLossPercent
	}

	if decision := EvaluateExit(trade, e.cfg, e.stats.Today); decision.Close {
		closed := e.closeLocked(trade, currentPrice, decision.Reason)
		return closed, nil
	}

	snapshot := *trade
	return &snapshot, nil
}

// CloseTrade finalizes a trade at the given price. Closing a trade that is
// already closed is not an error: the existing closed snapshot is returned
// unchanged.
func (e *Engine) CloseTrade(tradeID string, closePrice float64, reason dto.ExitReason) (*model.Trade, error) {
	if reason == "" {
		reason = dto.ExitManual
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if trade, ok := e.active[tradeID]; ok {
		return e.closeLocked(trade, closePrice, reason), nil
	}

	for i := range e.history {
		if e.history[i].ID == tradeID {
			snapshot := e.history[i]
			return &snapshot, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownTrade, tradeID)
}

// closeLocked transitions an open trade to closed, credits capital with the
// realized P&L, folds the result into the statistics and notifies
// subscribers. Caller must hold e.mu.
func (e *Engine) closeLocked(trade *model.Trade, closePrice float64, reason dto.ExitReason) *model.Trade {
	trade.CurrentPrice = closePrice
	applyUnrealizedPL(trade, closePrice)

	trade.Status = dto.StatusClosed
	trade.ExitReason = reason
	closedAt := e.now()
	trade.ClosedAt = &closedAt

	e.capital += trade.ProfitLoss
	e.applyClosedLocked(trade.ProfitLoss)

	delete(e.active, trade.ID)
	e.history = append(e.history, *trade)

	e.log.Info("Trade closed",
		logger.StringField("trade_id", trade.ID),
		logger.StringField("symbol", trade.Symbol),
		logger.StringField("reason", string(reason)),
		logger.Float64Field("close_price", closePrice),
		logger.Float64Field("profit_loss", trade.ProfitLoss),
		logger.Float64Field("capital", e.capital),
	)

	e.notifyLocked()

	snapshot := *trade
	for _, hook := range e.closeHooks {
		hook := hook
		utils.GoSafe(func() {
			hook(snapshot)
		})
	}
	return &snapshot
}

// GetActiveTrades returns value snapshots of all open trades.
func (e *Engine) GetActiveTrades() []model.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()

	trades := make([]model.Trade, 0, len(e.active))
	for _, t := range e.active {
		trades = append(trades, *t)
	}
	return trades
}

// GetTradeHistory returns the closed trades in close order.
func (e *Engine) GetTradeHistory() []model.Trade {
	e.mu.Lock()
	defer e.mu.Unlock()

	history := make([]model.Trade, len(e.history))
	copy(history, e.history)
	return history
}

// applyUnrealizedPL recomputes absolute and percentage P&L with
// direction-aware sign.
func applyUnrealizedPL(t *model.Trade, price float64) {
	if t.Direction == dto.DirectionLong {
		t.ProfitLoss = (price - t.EntryPrice) * t.Size
		t.ProfitLossPercent = (price - t.EntryPrice) / t.EntryPrice * 100
	} else {
		t.ProfitLoss = (t.EntryPrice - price) * t.Size
		t.ProfitLossPercent = (t.EntryPrice - price) / t.EntryPrice * 100
	}
}

const tradeIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func newTradeID(now time.Time) string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = tradeIDAlphabet[rand.Intn(len(tradeIDAlphabet))]
	}
	return fmt.Sprintf("trade-%d-%s", now.UnixMilli(), suffix)
}
