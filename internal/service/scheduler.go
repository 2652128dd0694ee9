package service

import (
	"context"
	"time"

	"golang-autoprofit/config"
	"golang-autoprofit/internal/engine"
	"golang-autoprofit/pkg/logger"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// SchedulerService drives the two periodic duties of the engine: polling
// open positions through the price monitor, and resetting the daily
// statistics bucket at the trading-day boundary.
type SchedulerService interface {
	Run(ctx context.Context) error
}

type schedulerService struct {
	cfg            *config.Config
	log            *logger.Logger
	cronParser     cron.Parser
	tradingService TradingService
	monitor        *engine.Monitor
}

func NewSchedulerService(
	cfg *config.Config,
	log *logger.Logger,
	tradingService TradingService,
	monitor *engine.Monitor,
) SchedulerService {
	return &schedulerService{
		cfg:            cfg,
		log:            log,
		cronParser:     cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		tradingService: tradingService,
		monitor:        monitor,
	}
}

// Run blocks until the context is cancelled.
func (s *schedulerService) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.monitor.Run(gctx)
	})
	g.Go(func() error {
		return s.runDailyReset(gctx)
	})

	return g.Wait()
}

func (s *schedulerService) runDailyReset(ctx context.Context) error {
	schedule, err := s.cronParser.Parse(s.cfg.Scheduler.DailyResetCron)
	if err != nil {
		s.log.Error("Failed to parse daily reset cron expression",
			logger.StringField("cron", s.cfg.Scheduler.DailyResetCron),
			logger.ErrorField(err),
		)
		return err
	}

	for {
		now := time.Now()
		next := schedule.Next(now)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("Daily reset scheduler stopped")
			return nil
		case <-timer.C:
		}

		stats, err := s.tradingService.ResetDaily(ctx)
		if err != nil {
			s.log.ErrorContextWithAlert(ctx, "Failed to reset daily stats", logger.ErrorField(err))
			continue
		}
		s.log.InfoContext(ctx, "Daily stats reset",
			logger.Float64Field("week", stats.Week),
			logger.Float64Field("total", stats.Total),
		)
	}
}
