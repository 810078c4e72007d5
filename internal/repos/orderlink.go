package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type OrderLinkRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, links []*types.OrderLink) error
	// ListByOrder returns links in submission order: link_order, ties by id.
	ListByOrder(ctx context.Context, tx *gorm.DB, orderID string) ([]*types.OrderLink, error)
	ListByOrders(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.OrderLink, error)
	SetPrinted(ctx context.Context, tx *gorm.DB, orderID string, linkID uint, printed bool) (int64, error)
	// ListPrinted returns printed links whose URL contains urlFragment,
	// joined with their orders, newest link first.
	ListPrinted(ctx context.Context, tx *gorm.DB, urlFragment string) ([]*types.PrintedModel, error)
	DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) (int64, error)
}

type orderLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderLinkRepo(db *gorm.DB, baseLog *logger.Logger) OrderLinkRepo {
	repoLog := baseLog.With("repo", "OrderLinkRepo")
	return &orderLinkRepo{db: db, log: repoLog}
}

func (lr *orderLinkRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return lr.db
}

func (lr *orderLinkRepo) CreateBatch(ctx context.Context, tx *gorm.DB, links []*types.OrderLink) error {
	if len(links) == 0 {
		return nil
	}
	return lr.conn(tx).WithContext(ctx).Create(&links).Error
}

func (lr *orderLinkRepo) ListByOrder(ctx context.Context, tx *gorm.DB, orderID string) ([]*types.OrderLink, error) {
	var results []*types.OrderLink
	if err := lr.conn(tx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("link_order, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *orderLinkRepo) ListByOrders(ctx context.Context, tx *gorm.DB, orderIDs []string) ([]*types.OrderLink, error) {
	var results []*types.OrderLink
	if len(orderIDs) == 0 {
		return results, nil
	}
	if err := lr.conn(tx).WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("link_order, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *orderLinkRepo) SetPrinted(ctx context.Context, tx *gorm.DB, orderID string, linkID uint, printed bool) (int64, error) {
	res := lr.conn(tx).WithContext(ctx).
		Model(&types.OrderLink{}).
		Where("id = ? AND order_id = ?", linkID, orderID).
		Update("printed", printed)
	return res.RowsAffected, res.Error
}

func (lr *orderLinkRepo) ListPrinted(ctx context.Context, tx *gorm.DB, urlFragment string) ([]*types.PrintedModel, error) {
	var results []*types.PrintedModel
	if err := lr.conn(tx).WithContext(ctx).
		Table("order_links AS ol").
		Select(`ol.id, ol.order_id, ol.link_url, ol.copies, ol.printed, ol.created_at,
			o.user_id, o.user_name, o.status AS order_status, o.created_at AS order_created_at`).
		Joins("INNER JOIN orders o ON ol.order_id = o.id").
		Where("ol.printed = ? AND ol.link_url LIKE ?", true, "%"+urlFragment+"%").
		Order("ol.created_at DESC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *orderLinkRepo) DeleteByOrder(ctx context.Context, tx *gorm.DB, orderID string) (int64, error) {
	res := lr.conn(tx).WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&types.OrderLink{})
	return res.RowsAffected, res.Error
}
