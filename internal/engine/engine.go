package engine

import (
	"fmt"
	"sync"
	"time"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"
	"golang-autoprofit/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
)

// Engine owns the open-trade ledger, the working capital, the running
// statistics and the subscriber list. Every instance is independent;
// callers hold and pass a reference instead of a process-wide global.
//
// A single coarse mutex serializes all state mutation: capital updates must
// be read-modify-write atomic with respect to concurrent trade closes, and
// statistics must never observe a trade as closed before it is reflected.
type Engine struct {
	mu sync.Mutex

	log      *logger.Logger
	validate *goValidator.Validate

	cfg            dto.RiskConfig
	capital        float64
	initialCapital float64

	active  map[string]*model.Trade
	history []model.Trade

	stats dto.ProfitStats

	subscribers []subscriber
	nextSubID   int

	closeHooks []func(model.Trade)

	now func() time.Time
}

// OnTradeClosed registers a hook receiving a value snapshot of every trade
// the engine closes, regardless of the close path. Hooks run asynchronously
// and panics in them are isolated; they cannot delay or fail a close.
func (e *Engine) OnTradeClosed(fn func(model.Trade)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeHooks = append(e.closeHooks, fn)
}

// Option customizes an Engine at construction time.
type Option func(*Engine)

// WithClock injects the time source, letting tests advance virtual time
// instead of depending on wall-clock timers.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine with the given risk configuration and starting
// capital. The configuration is validated the same way later updates are.
func New(log *logger.Logger, cfg dto.RiskConfig, initialCapital float64, opts ...Option) (*Engine, error) {
	e := &Engine{
		log:            log,
		validate:       goValidator.New(),
		capital:        initialCapital,
		initialCapital: initialCapital,
		active:         make(map[string]*model.Trade),
		now:            time.Now,
	}
	if err := e.validateConfig(cfg); err != nil {
		return nil, err
	}
	e.cfg = cfg

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) validateConfig(cfg dto.RiskConfig) error {
	if err := e.validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// UpdateConfig replaces the risk configuration after validating it.
// Out-of-range values are rejected, never clamped. Trades already open keep
// the stop and target levels frozen for them at open time.
func (e *Engine) UpdateConfig(cfg dto.RiskConfig) error {
	if err := e.validateConfig(cfg); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
	return nil
}

func (e *Engine) GetConfig() dto.RiskConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

func (e *Engine) GetCapital() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capital
}

// SetCapital resets both the working capital and the sizing base.
func (e *Engine) SetCapital(capital float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.capital = capital
	e.initialCapital = capital
}

// sizingBaseLocked is the capital figure position sizing works from. With
// auto-compound on, realized P&L grows (or shrinks) the base; off, sizing
// stays anchored to the session's starting capital.
func (e *Engine) sizingBaseLocked() float64 {
	if e.cfg.AutoCompound {
		return e.capital
	}
	return e.initialCapital
}

// CalculatePositionSize sizes a position against the engine's capital and
// configured per-trade risk.
func (e *Engine) CalculatePositionSize(entryPrice, stopPrice float64) (float64, error) {
	e.mu.Lock()
	base := e.sizingBaseLocked()
	maxRisk := e.cfg.MaxRiskPerTrade
	e.mu.Unlock()

	return PositionSize(entryPrice, stopPrice, base, maxRisk)
}
