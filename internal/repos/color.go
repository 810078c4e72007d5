package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type ColorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, color *types.Color) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Color, error)
	GetByUserAndName(ctx context.Context, tx *gorm.DB, userID, name string) (*types.Color, error)
	List(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Color, error)
	// ListAllOrdered returns every color ordered by (user_id, created_at),
	// the deterministic walk order of the migration runner.
	ListAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Color, error)
	Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error)
}

type colorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewColorRepo(db *gorm.DB, baseLog *logger.Logger) ColorRepo {
	repoLog := baseLog.With("repo", "ColorRepo")
	return &colorRepo{db: db, log: repoLog}
}

func (cr *colorRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *colorRepo) Create(ctx context.Context, tx *gorm.DB, color *types.Color) error {
	return cr.conn(tx).WithContext(ctx).Create(color).Error
}

func (cr *colorRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Color, error) {
	var color types.Color
	if err := cr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (cr *colorRepo) GetByUserAndName(ctx context.Context, tx *gorm.DB, userID, name string) (*types.Color, error) {
	var color types.Color
	if err := cr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&color).Error; err != nil {
		return nil, err
	}
	return &color, nil
}

func (cr *colorRepo) List(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Color, error) {
	var results []*types.Color
	q := cr.conn(tx).WithContext(ctx)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *colorRepo) ListAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Color, error) {
	var results []*types.Color
	if err := cr.conn(tx).WithContext(ctx).
		Order("user_id, created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *colorRepo) Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (int64, error) {
	res := cr.conn(tx).WithContext(ctx).
		Model(&types.Color{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (cr *colorRepo) Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	res := cr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Color{})
	return res.RowsAffected, res.Error
}
