package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

type MaterialTypeService interface {
	Create(ctx context.Context, name string) (*types.MaterialType, error)
	List(ctx context.Context) ([]*types.MaterialType, error)
	Delete(ctx context.Context, id uint) error
}

type materialTypeService struct {
	db               *gorm.DB
	log              *logger.Logger
	materialTypeRepo repos.MaterialTypeRepo
	materialRepo     repos.MaterialRepo
}

func NewMaterialTypeService(
	db *gorm.DB,
	log *logger.Logger,
	materialTypeRepo repos.MaterialTypeRepo,
	materialRepo repos.MaterialRepo,
) MaterialTypeService {
	serviceLog := log.With("service", "MaterialTypeService")
	return &materialTypeService{
		db:               db,
		log:              serviceLog,
		materialTypeRepo: materialTypeRepo,
		materialRepo:     materialRepo,
	}
}

func (mts *materialTypeService) Create(ctx context.Context, name string) (*types.MaterialType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("material type name is required")
	}
	mt := &types.MaterialType{Name: name}
	if err := mts.materialTypeRepo.Create(ctx, nil, mt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictf("material type %q already exists", name)
		}
		return nil, err
	}
	return mt, nil
}

func (mts *materialTypeService) List(ctx context.Context) ([]*types.MaterialType, error) {
	return mts.materialTypeRepo.List(ctx, nil)
}

// Delete refuses to remove a type that materials still reference.
func (mts *materialTypeService) Delete(ctx context.Context, id uint) error {
	mt, err := mts.materialTypeRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("material type %d", id)
		}
		return err
	}
	inUse, err := mts.materialRepo.CountByType(ctx, nil, mt.Name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return conflictf("cannot delete material type: %d material(s) are using it", inUse)
	}
	rows, err := mts.materialTypeRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundf("material type %d", id)
	}
	return nil
}
