package repository

import (
	"golang-autoprofit/config"
	"golang-autoprofit/pkg/cache"
	"golang-autoprofit/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	TradeRepo         TradeRepository
	StatsSnapshotRepo StatsSnapshotRepository
	PriceFeedRepo     PriceFeedRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	return &Repository{
		TradeRepo:         NewTradeRepository(db),
		StatsSnapshotRepo: NewStatsSnapshotRepository(db),
		PriceFeedRepo:     NewPriceFeedRepository(cfg, inmemoryCache, log),
	}, nil
}
