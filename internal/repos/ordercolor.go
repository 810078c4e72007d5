package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type OrderColorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, oc *types.OrderColor) error
	ListByOrder(ctx context.Context, tx *gorm.DB, orderID string) ([]*types.OrderColor, error)
	ListByOrders(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.OrderColor, error)
	DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) (int64, error)
}

type orderColorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderColorRepo(db *gorm.DB, baseLog *logger.Logger) OrderColorRepo {
	repoLog := baseLog.With("repo", "OrderColorRepo")
	return &orderColorRepo{db: db, log: repoLog}
}

func (cr *orderColorRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *orderColorRepo) Create(ctx context.Context, tx *gorm.DB, oc *types.OrderColor) error {
	return cr.conn(tx).WithContext(ctx).Create(oc).Error
}

func (cr *orderColorRepo) ListByOrder(ctx context.Context, tx *gorm.DB, orderID string) ([]*types.OrderColor, error) {
	var results []*types.OrderColor
	if err := cr.conn(tx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("color_name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *orderColorRepo) ListByOrders(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.OrderColor, error) {
	var results []*types.OrderColor
	if len(orderIDs) == 0 {
		return results, nil
	}
	if err := cr.conn(tx).WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("color_name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *orderColorRepo) DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) (int64, error) {
	res := cr.conn(tx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&types.OrderColor{})
	return res.RowsAffected, res.Error
}
