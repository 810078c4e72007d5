package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type OrderFilter struct {
	UserID string
	Status string
}

type OrderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, order *types.Order) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Order, error)
	List(ctx context.Context, tx *gorm.DB, filter OrderFilter) ([]*types.Order, error)
	Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

func (or *orderRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return or.db
}

func (or *orderRepo) Create(ctx context.Context, tx *gorm.DB, order *types.Order) error {
	return or.conn(tx).WithContext(ctx).Create(order).Error
}

func (or *orderRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Order, error) {
	var order types.Order
	if err := or.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (or *orderRepo) List(ctx context.Context, tx *gorm.DB, filter OrderFilter) ([]*types.Order, error) {
	var results []*types.Order
	q := or.conn(tx).WithContext(ctx)
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (or *orderRepo) Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (int64, error) {
	res := or.conn(tx).WithContext(ctx).
		Model(&types.Order{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (or *orderRepo) Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	res := or.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Order{})
	return res.RowsAffected, res.Error
}
