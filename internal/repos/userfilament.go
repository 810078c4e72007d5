package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

type UserFilamentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, uf *types.UserFilament) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.UserFilament, error)
	GetByUserAndMaterial(ctx context.Context, tx *gorm.DB, userID, materialID string) (*types.UserFilament, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserFilamentDetail, error)
	UpdateQuantity(ctx context.Context, tx *gorm.DB, id string, quantity int) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error)
}

type userFilamentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserFilamentRepo(db *gorm.DB, baseLog *logger.Logger) UserFilamentRepo {
	repoLog := baseLog.With("repo", "UserFilamentRepo")
	return &userFilamentRepo{db: db, log: repoLog}
}

func (fr *userFilamentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return fr.db
}

func (fr *userFilamentRepo) Create(ctx context.Context, tx *gorm.DB, uf *types.UserFilament) error {
	return fr.conn(tx).WithContext(ctx).Create(uf).Error
}

func (fr *userFilamentRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.UserFilament, error) {
	var uf types.UserFilament
	if err := fr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&uf).Error; err != nil {
		return nil, err
	}
	return &uf, nil
}

func (fr *userFilamentRepo) GetByUserAndMaterial(ctx context.Context, tx *gorm.DB, userID, materialID string) (*types.UserFilament, error) {
	var uf types.UserFilament
	if err := fr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND material_id = ?", userID, materialID).
		First(&uf).Error; err != nil {
		return nil, err
	}
	return &uf, nil
}

func (fr *userFilamentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserFilamentDetail, error) {
	var results []*types.UserFilamentDetail
	if err := fr.conn(tx).WithContext(ctx).
		Table("user_filaments AS uf").
		Select(`uf.id, uf.user_id, uf.material_id, uf.quantity, uf.created_at, uf.updated_at,
			m.name, m.color, m.material_type, m.shop_link`).
		Joins("JOIN materials m ON uf.material_id = m.id").
		Where("uf.user_id = ?", userID).
		Order("uf.created_at DESC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *userFilamentRepo) UpdateQuantity(ctx context.Context, tx *gorm.DB, id string, quantity int) (int64, error) {
	res := fr.conn(tx).WithContext(ctx).
		Model(&types.UserFilament{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

func (fr *userFilamentRepo) Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	res := fr.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.UserFilament{})
	return res.RowsAffected, res.Error
}
