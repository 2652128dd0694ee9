package service

import (
	"context"
	"time"

	"golang-autoprofit/config"
	"golang-autoprofit/internal/contract"
	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/engine"
	"golang-autoprofit/internal/model"
	"golang-autoprofit/internal/repository"
	"golang-autoprofit/pkg/logger"
)

type TradingService interface {
	AutoTrade(ctx context.Context, symbol string) (*model.Trade, error)
	OpenTrade(ctx context.Context, req dto.OpenTradeRequest) (*model.Trade, error)
	CloseTrade(ctx context.Context, tradeID string, closePrice float64, reason dto.ExitReason) (*model.Trade, error)
	ProcessTick(ctx context.Context, tick dto.PriceTick) ([]model.Trade, error)
	GetActiveTrades(ctx context.Context) []model.Trade
	GetTradeHistory(ctx context.Context, param dto.GetTradesParam) ([]model.Trade, error)
	GetStats(ctx context.Context) dto.ProfitStats
	ResetDaily(ctx context.Context) (dto.ProfitStats, error)
	GetConfig() dto.RiskConfig
	UpdateConfig(cfg dto.RiskConfig) error
	GetCapital() float64
	SetCapital(capital float64)
	Subscribe(fn func(dto.ProfitStats)) int
	Unsubscribe(id int)
	Assess(metrics dto.PerformanceMetrics) dto.StrategyAssessment
	IsLiveReady(metrics dto.PerformanceMetrics) bool
}

type tradingService struct {
	cfg     *config.Config
	log     *logger.Logger
	engine  *engine.Engine
	repo    *repository.Repository
	signals contract.SignalProvider
}

func NewTradingService(
	cfg *config.Config,
	log *logger.Logger,
	eng *engine.Engine,
	repo *repository.Repository,
	signals contract.SignalProvider,
) TradingService {
	s := &tradingService{
		cfg:     cfg,
		log:     log,
		engine:  eng,
		repo:    repo,
		signals: signals,
	}

	// Closed trades are retained for statistics and audit. A persistence
	// failure must not prevent a trade from closing.
	eng.OnTradeClosed(func(trade model.Trade) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.repo.TradeRepo.Create(ctx, &trade); err != nil {
			s.log.ErrorContextWithAlert(ctx, "Failed to persist closed trade",
				logger.StringField("trade_id", trade.ID),
				logger.ErrorField(err),
			)
		}
	})

	return s
}

// AutoTrade consults the external signal provider for a symbol and, when it
// proposes an entry, sizes and opens the position. Trading pauses once the
// daily goal is reached or the open-position ceiling is hit.
func (s *tradingService) AutoTrade(ctx context.Context, symbol string) (*model.Trade, error) {
	riskCfg := s.engine.GetConfig()

	if stats := s.engine.GetStats(); stats.Today >= riskCfg.DailyGoal {
		s.log.InfoContext(ctx, "Daily goal reached, auto-trading paused for today",
			logger.Float64Field("today", stats.Today),
			logger.Float64Field("daily_goal", riskCfg.DailyGoal),
		)
		return nil, nil
	}

	if len(s.engine.GetActiveTrades()) >= riskCfg.MaxOpenPositions {
		return nil, nil
	}

	if s.signals == nil {
		s.log.WarnContext(ctx, "No signal provider configured, skipping auto-trade",
			logger.StringField("symbol", symbol))
		return nil, nil
	}

	price, err := s.repo.PriceFeedRepo.LastPrice(ctx, symbol)
	if err != nil {
		return nil, err
	}

	proposal, err := s.signals.Propose(ctx, symbol, price)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, nil
	}

	var stopPrice float64
	if proposal.Direction == dto.DirectionLong {
		stopPrice = price * (1 - riskCfg.StopLoss/100)
	} else {
		stopPrice = price * (1 + riskCfg.StopLoss/100)
	}

	size, err := s.engine.CalculatePositionSize(price, stopPrice)
	if err != nil {
		return nil, err
	}

	trade, err := s.engine.OpenTrade(proposal.Symbol, proposal.Direction, price, size)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Auto-trade opened",
		logger.StringField("trade_id", trade.ID),
		logger.StringField("symbol", trade.Symbol),
		logger.Float64Field("confidence", proposal.Confidence),
	)
	return trade, nil
}

func (s *tradingService) OpenTrade(ctx context.Context, req dto.OpenTradeRequest) (*model.Trade, error) {
	size := req.Size
	if size == 0 {
		riskCfg := s.engine.GetConfig()
		var stopPrice float64
		if req.Direction == dto.DirectionLong {
			stopPrice = req.Price * (1 - riskCfg.StopLoss/100)
		} else {
			stopPrice = req.Price * (1 + riskCfg.StopLoss/100)
		}

		var err error
		size, err = s.engine.CalculatePositionSize(req.Price, stopPrice)
		if err != nil {
			return nil, err
		}
	}

	return s.engine.OpenTrade(req.Symbol, req.Direction, req.Price, size)
}

func (s *tradingService) CloseTrade(ctx context.Context, tradeID string, closePrice float64, reason dto.ExitReason) (*model.Trade, error) {
	return s.engine.CloseTrade(tradeID, closePrice, reason)
}

// ProcessTick feeds an externally pushed price tick to every open trade on
// the symbol. Ticks racing a concurrent close are absorbed as no-ops.
func (s *tradingService) ProcessTick(ctx context.Context, tick dto.PriceTick) ([]model.Trade, error) {
	var updated []model.Trade
	for _, trade := range s.engine.GetActiveTrades() {
		if trade.Symbol != tick.Symbol {
			continue
		}

		snapshot, err := s.engine.Tick(trade.ID, tick.Price)
		if err != nil {
			return nil, err
		}
		if snapshot != nil {
			updated = append(updated, *snapshot)
		}
	}
	return updated, nil
}

func (s *tradingService) GetActiveTrades(ctx context.Context) []model.Trade {
	return s.engine.GetActiveTrades()
}

func (s *tradingService) GetTradeHistory(ctx context.Context, param dto.GetTradesParam) ([]model.Trade, error) {
	if len(param.IDs) == 0 && len(param.Symbols) == 0 && len(param.ExitReasons) == 0 && len(param.Statuses) == 0 {
		param.Statuses = []dto.TradeStatus{dto.StatusClosed}
	}
	return s.repo.TradeRepo.Get(ctx, param)
}

func (s *tradingService) GetStats(ctx context.Context) dto.ProfitStats {
	return s.engine.GetStats()
}

// ResetDaily snapshots the outgoing statistics, then zeroes the today
// bucket. Invoked by the scheduler at the trading-day boundary.
func (s *tradingService) ResetDaily(ctx context.Context) (dto.ProfitStats, error) {
	outgoing := s.engine.GetStats()
	if err := s.repo.StatsSnapshotRepo.Create(ctx, outgoing, s.engine.GetCapital(), time.Now()); err != nil {
		s.log.ErrorContext(ctx, "Failed to persist stats snapshot", logger.ErrorField(err))
	}

	return s.engine.ResetDaily(), nil
}

func (s *tradingService) GetConfig() dto.RiskConfig {
	return s.engine.GetConfig()
}

func (s *tradingService) UpdateConfig(cfg dto.RiskConfig) error {
	return s.engine.UpdateConfig(cfg)
}

func (s *tradingService) GetCapital() float64 {
	return s.engine.GetCapital()
}

func (s *tradingService) SetCapital(capital float64) {
	s.engine.SetCapital(capital)
}

func (s *tradingService) Subscribe(fn func(dto.ProfitStats)) int {
	return s.engine.Subscribe(fn)
}

func (s *tradingService) Unsubscribe(id int) {
	s.engine.Unsubscribe(id)
}

func (s *tradingService) Assess(metrics dto.PerformanceMetrics) dto.StrategyAssessment {
	return engine.Assess(metrics)
}

func (s *tradingService) IsLiveReady(metrics dto.PerformanceMetrics) bool {
	return engine.IsLiveReady(metrics)
}
