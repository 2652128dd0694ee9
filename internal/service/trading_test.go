package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang-autoprofit/config"
	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/engine"
	"golang-autoprofit/internal/model"
	"golang-autoprofit/internal/repository"
	"golang-autoprofit/pkg/logger"
	"golang-autoprofit/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTradeRepo struct {
	mu        sync.Mutex
	created   []model.Trade
	lastParam dto.GetTradesParam
}

func (f *fakeTradeRepo) Create(_ context.Context, trade *model.Trade, _ ...utils.DBOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *trade)
	return nil
}

func (f *fakeTradeRepo) Get(_ context.Context, param dto.GetTradesParam) ([]model.Trade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastParam = param
	return f.created, nil
}

func (f *fakeTradeRepo) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []dto.ProfitStats
}

func (f *fakeSnapshotRepo) Create(_ context.Context, stats dto.ProfitStats, _ float64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, stats)
	return nil
}

func (f *fakeSnapshotRepo) GetLatest(_ context.Context, _ int) ([]model.StatsSnapshot, error) {
	return nil, nil
}

type fakePriceRepo struct {
	price float64
}

func (f *fakePriceRepo) LastPrice(_ context.Context, _ string) (float64, error) {
	return f.price, nil
}

type fakeSignals struct {
	proposal *dto.ProposedTrade
	calls    int
}

func (f *fakeSignals) Propose(_ context.Context, _ string, _ float64) (*dto.ProposedTrade, error) {
	f.calls++
	return f.proposal, nil
}

type serviceFixture struct {
	svc       TradingService
	engine    *engine.Engine
	trades    *fakeTradeRepo
	snapshots *fakeSnapshotRepo
	signals   *fakeSignals
}

func newServiceFixture(t *testing.T, cfg dto.RiskConfig, price float64) *serviceFixture {
	t.Helper()

	log := &logger.Logger{Logger: zap.NewNop()}
	eng, err := engine.New(log, cfg, 10000)
	require.NoError(t, err)

	trades := &fakeTradeRepo{}
	snapshots := &fakeSnapshotRepo{}
	signals := &fakeSignals{
		proposal: &dto.ProposedTrade{Symbol: "BTCUSDT", Direction: dto.DirectionLong, Confidence: 0.9},
	}
	repo := &repository.Repository{
		TradeRepo:         trades,
		StatsSnapshotRepo: snapshots,
		PriceFeedRepo:     &fakePriceRepo{price: price},
	}

	return &serviceFixture{
		svc:       NewTradingService(&config.Config{}, log, eng, repo, signals),
		engine:    eng,
		trades:    trades,
		snapshots: snapshots,
		signals:   signals,
	}
}

func defaultRiskConfig() dto.RiskConfig {
	return dto.RiskConfig{
		DailyGoal:        100,
		ProfitTarget:     3,
		StopLoss:         1.5,
		MaxRiskPerTrade:  2,
		AutoCompound:     true,
		MaxOpenPositions: 3,
	}
}

func TestAutoTradeOpensFromSignal(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)

	trade, err := f.svc.AutoTrade(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, trade)

	assert.Equal(t, "BTCUSDT", trade.Symbol)
	assert.Equal(t, dto.StatusOpen, trade.Status)
	assert.InDelta(t, 100, trade.EntryPrice, 1e-9)
	assert.InDelta(t, 25, trade.Size, 1e-9)
	assert.Equal(t, 1, f.signals.calls)
}

func TestAutoTradeSkipsWhenGoalMet(t *testing.T) {
	cfg := defaultRiskConfig()
	cfg.DailyGoal = 10
	f := newServiceFixture(t, cfg, 100)

	tr, err := f.engine.OpenTrade("ETHUSDT", dto.DirectionLong, 100, 10)
	require.NoError(t, err)
	_, err = f.engine.CloseTrade(tr.ID, 102, "")
	require.NoError(t, err)
	require.GreaterOrEqual(t, f.engine.GetStats().Today, cfg.DailyGoal)

	trade, err := f.svc.AutoTrade(context.Background(), "BTCUSDT")
	assert.NoError(t, err)
	assert.Nil(t, trade)
	assert.Zero(t, f.signals.calls, "the signal provider must not be consulted after the goal is met")
}

func TestAutoTradeSkipsAtPositionCeiling(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)

	for _, symbol := range []string{"AAA", "BBB", "CCC"} {
		_, err := f.engine.OpenTrade(symbol, dto.DirectionLong, 100, 1)
		require.NoError(t, err)
	}

	trade, err := f.svc.AutoTrade(context.Background(), "BTCUSDT")
	assert.NoError(t, err)
	assert.Nil(t, trade)
	assert.Zero(t, f.signals.calls)
}

func TestAutoTradeNoProposalIsNoOp(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)
	f.signals.proposal = nil

	trade, err := f.svc.AutoTrade(context.Background(), "BTCUSDT")
	assert.NoError(t, err)
	assert.Nil(t, trade)
	assert.Equal(t, 1, f.signals.calls)
	assert.Empty(t, f.engine.GetActiveTrades())
}

func TestCloseTradePersistsThroughHook(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)

	trade, err := f.svc.OpenTrade(context.Background(), dto.OpenTradeRequest{
		Symbol:    "BTCUSDT",
		Direction: dto.DirectionLong,
		Price:     100,
		Size:      10,
	})
	require.NoError(t, err)

	closed, err := f.svc.CloseTrade(context.Background(), trade.ID, 102, "")
	require.NoError(t, err)
	assert.Equal(t, dto.StatusClosed, closed.Status)

	assert.Eventually(t, func() bool {
		return f.trades.createdCount() == 1
	}, time.Second, 10*time.Millisecond, "the closed trade must reach the repository")
}

func TestProcessTickClosesOnTarget(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)

	_, err := f.engine.OpenTrade("BTCUSDT", dto.DirectionLong, 100, 10)
	require.NoError(t, err)
	_, err = f.engine.OpenTrade("ETHUSDT", dto.DirectionLong, 200, 5)
	require.NoError(t, err)

	updated, err := f.svc.ProcessTick(context.Background(), dto.PriceTick{Symbol: "BTCUSDT", Price: 103})
	require.NoError(t, err)
	require.Len(t, updated, 1, "only trades on the ticked symbol are touched")
	assert.Equal(t, dto.ExitTakeProfit, updated[0].ExitReason)

	remaining := f.engine.GetActiveTrades()
	require.Len(t, remaining, 1)
	assert.Equal(t, "ETHUSDT", remaining[0].Symbol)
}

func TestResetDailySnapshotsOutgoingStats(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)

	tr, err := f.engine.OpenTrade("BTCUSDT", dto.DirectionLong, 100, 10)
	require.NoError(t, err)
	_, err = f.engine.CloseTrade(tr.ID, 105, "")
	require.NoError(t, err)

	after, err := f.svc.ResetDaily(context.Background())
	require.NoError(t, err)
	assert.Zero(t, after.Today)

	require.Len(t, f.snapshots.snapshots, 1)
	assert.InDelta(t, 50, f.snapshots.snapshots[0].Today, 1e-9,
		"the snapshot captures the statistics before the reset")
}

func TestGetTradeHistoryDefaultsToClosed(t *testing.T) {
	f := newServiceFixture(t, defaultRiskConfig(), 100)

	_, err := f.svc.GetTradeHistory(context.Background(), dto.GetTradesParam{})
	require.NoError(t, err)
	assert.Equal(t, []dto.TradeStatus{dto.StatusClosed}, f.trades.lastParam.Statuses)

	_, err = f.svc.GetTradeHistory(context.Background(), dto.GetTradesParam{Symbols: []string{"BTCUSDT"}})
	require.NoError(t, err)
	assert.Empty(t, f.trades.lastParam.Statuses)
}
