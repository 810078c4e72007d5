package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type MaterialTypeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mt *types.MaterialType) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.MaterialType, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MaterialType, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
}

type materialTypeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMaterialTypeRepo(db *gorm.DB, baseLog *logger.Logger) MaterialTypeRepo {
	repoLog := baseLog.With("repo", "MaterialTypeRepo")
	return &materialTypeRepo{db: db, log: repoLog}
}

func (mr *materialTypeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return mr.db
}

func (mr *materialTypeRepo) Create(ctx context.Context, tx *gorm.DB, mt *types.MaterialType) error {
	return mr.conn(tx).WithContext(ctx).Create(mt).Error
}

func (mr *materialTypeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*types.MaterialType, error) {
	var mt types.MaterialType
	if err := mr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&mt).Error; err != nil {
		return nil, err
	}
	return &mt, nil
}

func (mr *materialTypeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MaterialType, error) {
	var results []*types.MaterialType
	if err := mr.conn(tx).WithContext(ctx).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *materialTypeRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	res := mr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.MaterialType{})
	return res.RowsAffected, res.Error
}
