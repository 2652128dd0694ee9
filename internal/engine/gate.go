package engine

import "golang-autoprofit/internal/dto"

// Live-readiness thresholds. All four must hold before a configuration
// validated by historical simulation may trade real money.
const (
	MinLiveWinRate      = 70.0
	MinLiveProfitFactor = 1.5
	MaxLiveDrawdown     = 15.0
	MinLiveTotalTrades  = 30
)

// IsLiveReady reports whether simulated performance clears every promotion
// threshold. Conjunction, not a weighted score.
func IsLiveReady(m dto.PerformanceMetrics) bool {
	winRateOk := m.WinRate >= MinLiveWinRate
	profitFactorOk := m.ProfitFactor >= MinLiveProfitFactor
	drawdownOk := m.MaxDrawdown <= MaxLiveDrawdown
	tradeCountOk := m.TotalTrades >= MinLiveTotalTrades
	return winRateOk && profitFactorOk && drawdownOk && tradeCountOk
}

// Assess wraps IsLiveReady with the metrics echoed back for reporting.
func Assess(m dto.PerformanceMetrics) dto.StrategyAssessment {
	return dto.StrategyAssessment{
		ShouldEnableLive: IsLiveReady(m),
		Summary:          m,
	}
}
