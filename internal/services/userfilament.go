package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

type AssignFilamentInput struct {
	UserID     string
	MaterialID string
	Quantity   int
}

type UserFilamentService interface {
	Assign(ctx context.Context, input AssignFilamentInput) (*types.UserFilament, error)
	ListByUser(ctx context.Context, userID string) ([]*types.UserFilamentDetail, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Remove(ctx context.Context, id string) error
}

type userFilamentService struct {
	db               *gorm.DB
	log              *logger.Logger
	userFilamentRepo repos.UserFilamentRepo
	userRepo         repos.UserRepo
	materialRepo     repos.MaterialRepo
}

func NewUserFilamentService(
	db *gorm.DB,
	log *logger.Logger,
	userFilamentRepo repos.UserFilamentRepo,
	userRepo repos.UserRepo,
	materialRepo repos.MaterialRepo,
) UserFilamentService {
	serviceLog := log.With("service", "UserFilamentService")
	return &userFilamentService{
		db:               db,
		log:              serviceLog,
		userFilamentRepo: userFilamentRepo,
		userRepo:         userRepo,
		materialRepo:     materialRepo,
	}
}

func newUserFilamentID() string {
	return fmt.Sprintf("user_filament_%s", uuid.NewString()[:8])
}

// Assign gives a user some quantity of a material. Assigning a material the
// user already holds adds to the existing quantity instead of creating a
// second row.
func (ufs *userFilamentService) Assign(ctx context.Context, input AssignFilamentInput) (*types.UserFilament, error) {
	if input.UserID == "" || input.MaterialID == "" {
		return nil, invalidf("missing required fields")
	}
	if input.Quantity <= 0 {
		return nil, invalidf("quantity must be positive")
	}

	user, err := ufs.userRepo.GetByID(ctx, nil, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user %s", input.UserID)
		}
		return nil, err
	}
	if user.Role != types.RoleUser {
		return nil, invalidf("filaments can only be assigned to users with role %q", types.RoleUser)
	}
	if _, err := ufs.materialRepo.GetByID(ctx, nil, input.MaterialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("material %s", input.MaterialID)
		}
		return nil, err
	}

	var result *types.UserFilament
	err = ufs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ufs.userFilamentRepo.GetByUserAndMaterial(ctx, tx, input.UserID, input.MaterialID)
		if err == nil {
			merged := existing.Quantity + input.Quantity
			if _, err := ufs.userFilamentRepo.UpdateQuantity(ctx, tx, existing.ID, merged); err != nil {
				return err
			}
			existing.Quantity = merged
			result = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		uf := &types.UserFilament{
			ID:         newUserFilamentID(),
			UserID:     input.UserID,
			MaterialID: input.MaterialID,
			Quantity:   input.Quantity,
		}
		if err := ufs.userFilamentRepo.Create(ctx, tx, uf); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a race with a concurrent assign. Merge into the winner.
				winner, ferr := ufs.userFilamentRepo.GetByUserAndMaterial(ctx, tx, input.UserID, input.MaterialID)
				if ferr != nil {
					return ferr
				}
				merged := winner.Quantity + input.Quantity
				if _, uerr := ufs.userFilamentRepo.UpdateQuantity(ctx, tx, winner.ID, merged); uerr != nil {
					return uerr
				}
				winner.Quantity = merged
				result = winner
				return nil
			}
			return err
		}
		result = uf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (ufs *userFilamentService) ListByUser(ctx context.Context, userID string) ([]*types.UserFilamentDetail, error) {
	return ufs.userFilamentRepo.ListByUser(ctx, nil, userID)
}

// UpdateQuantity sets the absolute quantity. Zero removes the row entirely.
func (ufs *userFilamentService) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	if quantity < 0 {
		return invalidf("quantity must not be negative")
	}
	if quantity == 0 {
		return ufs.Remove(ctx, id)
	}
	rows, err := ufs.userFilamentRepo.UpdateQuantity(ctx, nil, id, quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundf("user filament %s", id)
	}
	return nil
}

func (ufs *userFilamentService) Remove(ctx context.Context, id string) error {
	rows, err := ufs.userFilamentRepo.Delete(ctx, nil, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFoundf("user filament %s", id)
	}
	return nil
}
