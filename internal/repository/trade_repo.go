package repository

import (
	"context"
	"fmt"
	"strings"

	"golang-autoprofit/internal/dto"
	"golang-autoprofit/internal/model"
	"golang-autoprofit/pkg/utils"

	"gorm.io/gorm"
)

type TradeRepository interface {
	Create(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error
	Get(ctx context.Context, param dto.GetTradesParam) ([]model.Trade, error)
}

type tradeRepository struct {
	db *gorm.DB
}

func NewTradeRepository(db *gorm.DB) TradeRepository {
	return &tradeRepository{
		db: db,
	}
}

func (r *tradeRepository) Create(ctx context.Context, trade *model.Trade, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(trade).Error
}

func (r *tradeRepository) Get(ctx context.Context, param dto.GetTradesParam) ([]model.Trade, error) {
	var trades []model.Trade

	qFilter := []string{}
	qFilterParam := []interface{}{}

	if len(param.IDs) > 0 {
		qFilter = append(qFilter, "id IN (?)")
		qFilterParam = append(qFilterParam, param.IDs)
	}

	if len(param.Symbols) > 0 {
		qFilter = append(qFilter, "symbol IN (?)")
		qFilterParam = append(qFilterParam, param.Symbols)
	}

	if len(param.Statuses) > 0 {
		qFilter = append(qFilter, "status IN (?)")
		qFilterParam = append(qFilterParam, param.Statuses)
	}

	if len(param.ExitReasons) > 0 {
		qFilter = append(qFilter, "exit_reason IN (?)")
		qFilterParam = append(qFilterParam, param.ExitReasons)
	}

	if len(qFilter) == 0 {
		return nil, fmt.Errorf("no filter provided")
	}

	query := r.db.WithContext(ctx).Where(strings.Join(qFilter, " AND "), qFilterParam...).Order("closed_at DESC")
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	if err := query.Find(&trades).Error; err != nil {
		return nil, err
	}

	return trades, nil
}
