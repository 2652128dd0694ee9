package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-autoprofit/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateConfigRejectsOutOfRange(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)

	tests := []struct {
		name   string
		mutate func(c dto.RiskConfig) dto.RiskConfig
	}{
		{
			name: "max risk above 100",
			mutate: func(c dto.RiskConfig) dto.RiskConfig {
				c.MaxRiskPerTrade = 150
				return c
			},
		},
		{
			name: "zero profit target",
			mutate: func(c dto.RiskConfig) dto.RiskConfig {
				c.ProfitTarget = 0
				return c
			},
		},
		{
			name: "negative stop loss",
			mutate: func(c dto.RiskConfig) dto.RiskConfig {
				c.StopLoss = -1
				return c
			},
		},
		{
			name: "zero daily goal",
			mutate: func(c dto.RiskConfig) dto.RiskConfig {
				c.DailyGoal = 0
				return c
			},
		},
		{
			name: "zero position ceiling",
			mutate: func(c dto.RiskConfig) dto.RiskConfig {
				c.MaxOpenPositions = 0
				return c
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.UpdateConfig(tt.mutate(baseRiskConfig()))
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Equal(t, baseRiskConfig(), e.GetConfig(), "a rejected update must not change the config")
		})
	}
}

// Take-profit scenario: long at 100, sized by the engine, ticked to a 3%
// gain.
func TestEndToEndTakeProfit(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)

	size, err := e.CalculatePositionSize(100, 98.5)
	require.NoError(t, err)
	assert.InDelta(t, 25, size, 1e-9)

	trade, err := e.OpenTrade("BTCUSDT", dto.DirectionLong, 100, size)
	require.NoError(t, err)

	snap, err := e.Tick(trade.ID, 103)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, dto.StatusClosed, snap.Status)
	assert.Equal(t, dto.ExitTakeProfit, snap.ExitReason)
	assert.InDelta(t, 75, snap.ProfitLoss, 1e-6)
	assert.InDelta(t, 10075, e.GetCapital(), 1e-6)

	stats := e.GetStats()
	assert.Equal(t, 1, stats.Trades.Winners)
	assert.Equal(t, 0, stats.Trades.Losers)
}

// Stop-loss scenario: long at 100 ticked to a 1.5% loss.
func TestEndToEndStopLoss(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)

	size, err := e.CalculatePositionSize(100, 98.5)
	require.NoError(t, err)

	trade, err := e.OpenTrade("BTCUSDT", dto.DirectionLong, 100, size)
	require.NoError(t, err)

	snap, err := e.Tick(trade.ID, 98.5)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Equal(t, dto.StatusClosed, snap.Status)
	assert.Equal(t, dto.ExitStopLoss, snap.ExitReason)
	assert.InDelta(t, -37.5, snap.ProfitLoss, 1e-6)
	assert.InDelta(t, 10000-37.5, e.GetCapital(), 1e-6)

	stats := e.GetStats()
	assert.Equal(t, 0, stats.Trades.Winners)
	assert.Equal(t, 1, stats.Trades.Losers)
}

// Once the daily goal is met, every open trade closes on its next tick
// regardless of its own P&L.
func TestGoalGatingClosesOpenTrades(t *testing.T) {
	cfg := baseRiskConfig()
	cfg.DailyGoal = 50
	e := newTestEngine(t, cfg, 10000)

	winner, err := e.OpenTrade("BTCUSDT", dto.DirectionLong, 100, 25)
	require.NoError(t, err)
	laggard, err := e.OpenTrade("ETHUSDT", dto.DirectionLong, 200, 5)
	require.NoError(t, err)

	snap, err := e.Tick(winner.ID, 103)
	require.NoError(t, err)
	require.Equal(t, dto.ExitTakeProfit, snap.ExitReason)
	require.GreaterOrEqual(t, e.GetStats().Today, cfg.DailyGoal)

	// The other trade is flat, yet the goal gate closes it.
	snap, err = e.Tick(laggard.ID, 200)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, dto.StatusClosed, snap.Status)
	assert.Equal(t, dto.ExitGoalReached, snap.ExitReason)
	assert.Empty(t, e.GetActiveTrades())
}

type fakeFeed struct {
	mu     sync.Mutex
	prices map[string]float64
}

func (f *fakeFeed) LastPrice(_ context.Context, symbol string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prices[symbol], nil
}

func (f *fakeFeed) set(symbol string, price float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[symbol] = price
}

func TestMonitorDrivesTradesToExit(t *testing.T) {
	e := newTestEngine(t, baseRiskConfig(), 10000)
	feed := &fakeFeed{prices: map[string]float64{"BTCUSDT": 100}}

	trade, err := e.OpenTrade("BTCUSDT", dto.DirectionLong, 100, 25)
	require.NoError(t, err)

	ticks := make(chan time.Time)
	monitor := NewMonitor(e.log, e, feed, time.Second, 3).WithTicks(ticks)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = monitor.Run(ctx)
	}()

	// Flat price round: the trade stays open.
	ticks <- time.Now()
	assert.Eventually(t, func() bool {
		trades := e.GetActiveTrades()
		return len(trades) == 1 && trades[0].CurrentPrice == 100
	}, time.Second, 10*time.Millisecond)

	// Price reaches the profit target on the next round.
	feed.set("BTCUSDT", 103)
	ticks <- time.Now()
	assert.Eventually(t, func() bool {
		history := e.GetTradeHistory()
		return len(history) == 1 && history[0].ExitReason == dto.ExitTakeProfit
	}, time.Second, 10*time.Millisecond)

	// A straggler round after the close is a no-op.
	ticks <- time.Now()
	history := e.GetTradeHistory()
	require.Len(t, history, 1)
	assert.Equal(t, trade.ID, history[0].ID)
	assert.InDelta(t, 10075, e.GetCapital(), 1e-6)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on cancellation")
	}
}
