package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

type CreateColorInput struct {
	ID           string
	UserID       string
	Name         string
	Value        string
	FilamentLink *string
}

type UpdateColorInput struct {
	Name         *string
	Value        *string
	FilamentLink *string
}

type ColorService interface {
	Create(ctx context.Context, input CreateColorInput) error
	Get(ctx context.Context, id string) (*types.Color, error)
	List(ctx context.Context, userID string) ([]*types.Color, error)
	Update(ctx context.Context, id string, input UpdateColorInput) error
	Delete(ctx context.Context, id string) error
}

type colorService struct {
	db        *gorm.DB
	log       *logger.Logger
	colorRepo repos.ColorRepo
}

func NewColorService(db *gorm.DB, log *logger.Logger, colorRepo repos.ColorRepo) ColorService {
	serviceLog := log.With("service", "ColorService")
	return &colorService{db: db, log: serviceLog, colorRepo: colorRepo}
}

func (cs *colorService) Create(ctx context.Context, input CreateColorInput) error {
	if input.ID == "" || input.UserID == "" || input.Name == "" || input.Value == "" {
		return invalidf("missing required fields")
	}
	link := input.FilamentLink
	if link != nil && *link == "" {
		link = nil
	}
	color := &types.Color{
		ID:           input.ID,
		UserID:       input.UserID,
		Name:         input.Name,
		Value:        input.Value,
		FilamentLink: link,
	}
	if err := cs.colorRepo.Create(ctx, nil, color); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictf("color %q already exists for user", input.Name)
		}
		return err
	}
	return nil
}

func (cs *colorService) Get(ctx context.Context, id string) (*types.Color, error) {
	color, err := cs.colorRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("color %s", id)
		}
		return nil, err
	}
	return color, nil
}

func (cs *colorService) List(ctx context.Context, userID string) ([]*types.Color, error) {
	return cs.colorRepo.List(ctx, nil, userID)
}

func (cs *colorService) Update(ctx context.Context, id string, input UpdateColorInput) error {
	fields := map[string]any{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Value != nil {
		fields["value"] = *input.Value
	}
	if input.FilamentLink != nil {
		if *input.FilamentLink == "" {
			fields["filament_link"] = nil
		} else {
			fields["filament_link"] = *input.FilamentLink
		}
	}
	if len(fields) == 0 {
		return invalidf("no fields to update")
	}

	if _, err := cs.colorRepo.GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("color %s", id)
		}
		return err
	}
	if _, err := cs.colorRepo.Update(ctx, nil, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictf("color name already exists for user")
		}
		return err
	}
	return nil
}

func (cs *colorService) Delete(ctx context.Context, id string) error {
	rows, err := cs.colorRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundf("color %s", id)
	}
	return nil
}
