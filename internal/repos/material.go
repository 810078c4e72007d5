package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type MaterialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, material *types.Material) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Material, error)
	GetByUserAndName(ctx context.Context, tx *gorm.DB, userID, name string) (*types.Material, error)
	// KeyExists checks the migration dedup key (user_id, name, color).
	KeyExists(ctx context.Context, tx *gorm.DB, userID, name, color string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Material, error)
	CountByType(ctx context.Context, tx *gorm.DB, materialType string) (int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error)
}

type materialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialRepo(db *gorm.DB, baseLog *logger.Logger) MaterialRepo {
	repoLog := baseLog.With("repo", "MaterialRepo")
	return &materialRepo{db: db, log: repoLog}
}

func (mr *materialRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return mr.db
}

func (mr *materialRepo) Create(ctx context.Context, tx *gorm.DB, material *types.Material) error {
	return mr.conn(tx).WithContext(ctx).Create(material).Error
}

func (mr *materialRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Material, error) {
	var material types.Material
	if err := mr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (mr *materialRepo) GetByUserAndName(ctx context.Context, tx *gorm.DB, userID, name string) (*types.Material, error) {
	var material types.Material
	if err := mr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&material).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (mr *materialRepo) KeyExists(ctx context.Context, tx *gorm.DB, userID, name, color string) (bool, error) {
	var count int64
	if err := mr.conn(tx).WithContext(ctx).
		Model(&types.Material{}).
		Where("user_id = ? AND name = ? AND color = ?", userID, name, color).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mr *materialRepo) List(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Material, error) {
	var results []*types.Material
	q := mr.conn(tx).WithContext(ctx)
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Order("material_type, name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *materialRepo) CountByType(ctx context.Context, tx *gorm.DB, materialType string) (int64, error) {
	var count int64
	err := mr.conn(tx).WithContext(ctx).
		Model(&types.Material{}).
		Where("material_type = ?", materialType).
		Count(&count).Error
	return count, err
}

func (mr *materialRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := mr.conn(tx).WithContext(ctx).
		Model(&types.Material{}).
		Count(&count).Error
	return count, err
}

func (mr *materialRepo) Update(ctx context.Context, tx *gorm.DB, id string, fields map[string]any) (int64, error) {
	res := mr.conn(tx).WithContext(ctx).
		Model(&types.Material{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (mr *materialRepo) Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	res := mr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Material{})
	return res.RowsAffected, res.Error
}
