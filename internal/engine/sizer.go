package engine

import (
	"fmt"
	"math"
)

// maxCapitalFraction caps any single position at 25% of capital no matter
// what the risk-based size works out to.
const maxCapitalFraction = 0.25

// PositionSize returns the number of units to trade so that the amount at
// risk between entry and stop stays within maxRiskPct of capital. Pure and
// deterministic; safe to call concurrently and from replay loops.
func PositionSize(entryPrice, stopPrice, capital, maxRiskPct float64) (float64, error) {
	if entryPrice <= 0 || capital <= 0 || maxRiskPct <= 0 {
		return 0, fmt.Errorf("%w: entry=%.4f capital=%.4f maxRiskPct=%.4f", ErrInvalidRiskInput, entryPrice, capital, maxRiskPct)
	}

	perUnitRisk := math.Abs(entryPrice - stopPrice)
	if perUnitRisk == 0 {
		return 0, fmt.Errorf("%w: entry price equals stop price", ErrInvalidRiskInput)
	}

	riskAmount := capital * (maxRiskPct / 100)
	size := riskAmount / perUnitRisk

	ceiling := capital * maxCapitalFraction / entryPrice
	return math.Min(size, ceiling), nil
}
