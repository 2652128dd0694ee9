package contract

import (
	"context"

	"golang-autoprofit/internal/dto"
)

// SignalProvider proposes entries for a symbol. Signal generation lives
// outside the engine; a nil proposal means no trade.
type SignalProvider interface {
	Propose(ctx context.Context, symbol string, price float64) (*dto.ProposedTrade, error)
}

// PriceFeed supplies the latest market price per symbol.
type PriceFeed interface {
	LastPrice(ctx context.Context, symbol string) (float64, error)
}
