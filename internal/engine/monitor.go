package engine

import (
	"context"
	"time"

	"golang-autoprofit/internal/contract"
	"golang-autoprofit/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Monitor drives open trades from a price feed. Each polling round fans out
// across trades concurrently but waits for the whole round before starting
// the next one, so ticks for any single trade are strictly serialized.
type Monitor struct {
	log            *logger.Logger
	engine         *Engine
	feed           contract.PriceFeed
	interval       time.Duration
	maxConcurrency int

	// ticks overrides the internal ticker when set, letting tests advance
	// rounds deterministically.
	ticks <-chan time.Time
}

func NewMonitor(log *logger.Logger, engine *Engine, feed contract.PriceFeed, interval time.Duration, maxConcurrency int) *Monitor {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	return &Monitor{
		log:            log,
		engine:         engine,
		feed:           feed,
		interval:       interval,
		maxConcurrency: maxConcurrency,
	}
}

// WithTicks replaces the wall-clock ticker with an injected channel.
func (m *Monitor) WithTicks(ticks <-chan time.Time) *Monitor {
	m.ticks = ticks
	return m
}

// Run polls until the context is cancelled. Cancellation is clean: no round
// starts after ctx is done, and a straggler tick landing on a trade that
// was closed meanwhile is absorbed by the engine as a no-op.
func (m *Monitor) Run(ctx context.Context) error {
	ticks := m.ticks
	if ticks == nil {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			m.log.Info("Price monitor stopped")
			return nil
		case <-ticks:
			m.EvaluateOnce(ctx)
		}
	}
}

// EvaluateOnce fetches the latest price for every open trade and feeds it
// through the engine. Feed failures for one symbol never block the others.
func (m *Monitor) EvaluateOnce(ctx context.Context) {
	trades := m.engine.GetActiveTrades()
	if len(trades) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.maxConcurrency)

	for _, trade := range trades {
		trade := trade
		g.Go(func() error {
			price, err := m.feed.LastPrice(gctx, trade.Symbol)
			if err != nil {
				m.log.WarnContext(gctx, "Failed to fetch price for open trade",
					logger.StringField("trade_id", trade.ID),
					logger.StringField("symbol", trade.Symbol),
					logger.ErrorField(err),
				)
				return nil
			}

			if _, err := m.engine.Tick(trade.ID, price); err != nil {
				m.log.ErrorContext(gctx, "Failed to process tick",
					logger.StringField("trade_id", trade.ID),
					logger.ErrorField(err),
				)
			}
			return nil
		})
	}

	_ = g.Wait()
}
