package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

type CreateMaterialInput struct {
	ID           string
	UserID       string
	Name         string
	Color        string
	MaterialType string
	ShopLink     *string
}

type UpdateMaterialInput struct {
	Name         *string
	Color        *string
	MaterialType *string
	ShopLink     *string
}

type MaterialService interface {
	Create(ctx context.Context, input CreateMaterialInput) error
	Get(ctx context.Context, id string) (*types.Material, error)
	List(ctx context.Context, userID string) ([]*types.Material, error)
	Update(ctx context.Context, id string, input UpdateMaterialInput) error
	Delete(ctx context.Context, id string) error
}

type materialService struct {
	db           *gorm.DB
	log          *logger.Logger
	materialRepo repos.MaterialRepo
}

func NewMaterialService(db *gorm.DB, log *logger.Logger, materialRepo repos.MaterialRepo) MaterialService {
	serviceLog := log.With("service", "MaterialService")
	return &materialService{db: db, log: serviceLog, materialRepo: materialRepo}
}

func (ms *materialService) Create(ctx context.Context, input CreateMaterialInput) error {
	if input.ID == "" || input.UserID == "" || input.Name == "" || input.Color == "" || input.MaterialType == "" {
		return invalidf("missing required fields")
	}
	link := input.ShopLink
	if link != nil && *link == "" {
		link = nil
	}
	material := &types.Material{
		ID:           input.ID,
		UserID:       input.UserID,
		Name:         input.Name,
		Color:        input.Color,
		MaterialType: input.MaterialType,
		ShopLink:     link,
	}
	if err := ms.materialRepo.Create(ctx, nil, material); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictf("material %q (%s) already exists for user", input.Name, input.Color)
		}
		return err
	}
	return nil
}

func (ms *materialService) Get(ctx context.Context, id string) (*types.Material, error) {
	material, err := ms.materialRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("material %s", id)
		}
		return nil, err
	}
	return material, nil
}

func (ms *materialService) List(ctx context.Context, userID string) ([]*types.Material, error) {
	return ms.materialRepo.List(ctx, nil, userID)
}

func (ms *materialService) Update(ctx context.Context, id string, input UpdateMaterialInput) error {
	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Color != nil {
		fields["color"] = *input.Color
	}
	if input.MaterialType != nil {
		fields["material_type"] = *input.MaterialType
	}
	if input.ShopLink != nil {
		if *input.ShopLink == "" {
			fields["shop_link"] = nil
		} else {
			fields["shop_link"] = *input.ShopLink
		}
	}
	if len(fields) == 0 {
		return invalidf("no fields to update")
	}

	if _, err := ms.materialRepo.GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("material %s", id)
		}
		return err
	}
	if _, err := ms.materialRepo.Update(ctx, nil, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictf("material with same name and color already exists")
		}
		return err
	}
	return nil
}

func (ms *materialService) Delete(ctx context.Context, id string) error {
	rows, err := ms.materialRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundf("material %s", id)
	}
	return nil
}
