package engine

import (
	"testing"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"

	"github.com/stretchr/testify/assert"
)

func baseRiskConfig() dto.RiskConfig {
	return dto.RiskConfig{
		DailyGoal:        100,
		ProfitTarget:     3,
		StopLoss:         1.5,
		TrailingStop:     false,
		MaxRiskPerTrade:  2,
		AutoCompound:     true,
		MaxOpenPositions: 3,
	}
}

func TestEvaluateExit(t *testing.T) {
	tests := []struct {
		name       string
		trade      model.Trade
		cfg        func(dto.RiskConfig) dto.RiskConfig
		todayPL    float64
		wantClose  bool
		wantReason dto.ExitReason
	}{
		{
			name:       "daily goal reached closes regardless of trade pl",
			trade:      model.Trade{ProfitLossPercent: -0.2},
			todayPL:    100,
			wantClose:  true,
			wantReason: dto.ExitGoalReached,
		},
		{
			name:       "goal takes precedence over take profit",
			trade:      model.Trade{ProfitLossPercent: 5},
			todayPL:    150,
			wantClose:  true,
			wantReason: dto.ExitGoalReached,
		},
		{
			name:       "take profit at target",
			trade:      model.Trade{ProfitLossPercent: 3},
			wantClose:  true,
			wantReason: dto.ExitTakeProfit,
		},
		{
			name:       "stop loss at threshold",
			trade:      model.Trade{ProfitLossPercent: -1.5},
			wantClose:  true,
			wantReason: dto.ExitStopLoss,
		},
		{
			name:  "inside the band holds",
			trade: model.Trade{ProfitLossPercent: 1.2},
		},
		{
			name:  "trailing disabled does not ratchet",
			trade: model.Trade{ProfitLossPercent: 0.6, HighestPLPercent: 2.5},
		},
		{
			name:  "trailing stop holds above ratcheted threshold",
			trade: model.Trade{ProfitLossPercent: 1.1, HighestPLPercent: 2.5},
			cfg: func(c dto.RiskConfig) dto.RiskConfig {
				c.TrailingStop = true
				return c
			},
		},
		{
			name:  "trailing stop fires once profit gives back the width",
			trade: model.Trade{ProfitLossPercent: 0.9, HighestPLPercent: 2.5},
			cfg: func(c dto.RiskConfig) dto.RiskConfig {
				c.TrailingStop = true
				return c
			},
			wantClose:  true,
			wantReason: dto.ExitStopLoss,
		},
		{
			name:  "trailing with no profit yet falls back to plain stop",
			trade: model.Trade{ProfitLossPercent: -1.2, HighestPLPercent: 0},
			cfg: func(c dto.RiskConfig) dto.RiskConfig {
				c.TrailingStop = true
				return c
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseRiskConfig()
			if tt.cfg != nil {
				cfg = tt.cfg(cfg)
			}

			got := EvaluateExit(&tt.trade, cfg, tt.todayPL)
			assert.Equal(t, tt.wantClose, got.Close)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

// The ratcheted threshold may only tighten as the highest seen profit grows.
func TestTrailingThresholdMonotonic(t *testing.T) {
	cfg := baseRiskConfig()
	cfg.TrailingStop = true

	for _, highest := range []float64{0.5, 1.0, 2.0, 2.9} {
		threshold := highest - cfg.StopLoss
		if threshold < -cfg.StopLoss {
			threshold = -cfg.StopLoss
		}

		hold := model.Trade{HighestPLPercent: highest, ProfitLossPercent: threshold + 0.01}
		assert.False(t, EvaluateExit(&hold, cfg, 0).Close,
			"pl just above the threshold must hold (highest=%.2f)", highest)

		fire := model.Trade{HighestPLPercent: highest, ProfitLossPercent: threshold - 0.01}
		got := EvaluateExit(&fire, cfg, 0)
		assert.True(t, got.Close, "pl below the threshold must close (highest=%.2f)", highest)
		assert.Equal(t, dto.ExitStopLoss, got.Reason)
	}
}
