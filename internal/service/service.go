package service

import (
	"golang-autoprofit/config"
	"golang-autoprofit/internal/contract"
	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/engine"
	"golang-autoprofit/internal/repository"
	"golang-autoprofit/pkg/logger"
)

type Service struct {
	TradingService   TradingService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	signals contract.SignalProvider,
) (*Service, error) {
	riskCfg := dto.RiskConfig{
		DailyGoal:        cfg.Engine.DailyGoal,
		ProfitTarget:     cfg.Engine.ProfitTarget,
		StopLoss:         cfg.Engine.StopLoss,
		TrailingStop:     cfg.Engine.TrailingStop,
		MaxRiskPerTrade:  cfg.Engine.MaxRiskPerTrade,
		AutoCompound:     cfg.Engine.AutoCompound,
		MaxOpenPositions: cfg.Engine.MaxOpenPositions,
	}

	eng, err := engine.New(log, riskCfg, cfg.Engine.InitialCapital)
	if err != nil {
		return nil, err
	}

	tradingService := NewTradingService(cfg, log, eng, repo, signals)

	monitor := engine.NewMonitor(log, eng, repo.PriceFeedRepo, cfg.Scheduler.MonitorInterval, cfg.Scheduler.MaxConcurrency)
	schedulerService := NewSchedulerService(cfg, log, tradingService, monitor)

	return &Service{
		TradingService:   tradingService,
		SchedulerService: schedulerService,
	}, nil
}
