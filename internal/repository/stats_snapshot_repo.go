package repository

import (
	"context"
	"encoding/json"
	"time"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"

	"gorm.io/gorm"
)

type StatsSnapshotRepository interface {
	Create(ctx context.Context, stats dto.ProfitStats, capital float64, takenAt time.Time) error
	GetLatest(ctx context.Context, limit int) ([]model.StatsSnapshot, error)
}

type statsSnapshotRepository struct {
	db *gorm.DB
}

func NewStatsSnapshotRepository(db *gorm.DB) StatsSnapshotRepository {
	return &statsSnapshotRepository{
		db: db,
	}
}

func (r *statsSnapshotRepository) Create(ctx context.Context, stats dto.ProfitStats, capital float64, takenAt time.Time) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	snapshot := &model.StatsSnapshot{
		Stats:   payload,
		Capital: capital,
		TakenAt: takenAt,
	}
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *statsSnapshotRepository) GetLatest(ctx context.Context, limit int) ([]model.StatsSnapshot, error) {
	var snapshots []model.StatsSnapshot
	if err := r.db.WithContext(ctx).Order("taken_at DESC").Limit(limit).Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
