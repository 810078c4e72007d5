package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

type RegisterUserInput struct {
	ID       string
	Username string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*types.User, error)
	Get(ctx context.Context, id string) (*types.User, error)
	List(ctx context.Context) ([]*types.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) error
	Delete(ctx context.Context, id string) error
	// Rate folds one completion score (0-10) into the user's running
	// average rating.
	Rate(ctx context.Context, id string, score float64) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) Register(ctx context.Context, input RegisterUserInput) (*types.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.ID == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, invalidf("missing required fields")
	}

	role := input.Role
	if role == "" {
		role = types.RoleUser
	}
	if role != types.RoleUser && role != types.RolePrinter {
		return nil, invalidf("unknown role %q", role)
	}

	emailTaken, err := us.userRepo.EmailExists(ctx, nil, input.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if emailTaken {
		return nil, conflictf("email already registered")
	}
	usernameTaken, err := us.userRepo.UsernameExists(ctx, nil, input.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if usernameTaken {
		return nil, conflictf("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:           input.ID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := us.userRepo.Create(ctx, nil, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictf("username or email already exists")
		}
		return nil, err
	}
	return user, nil
}

func (us *userService) Get(ctx context.Context, id string) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user %s", id)
		}
		return nil, err
	}
	return user, nil
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) Update(ctx context.Context, id string, input UpdateUserInput) error {
	fields := map[string]any{}
	if input.Username != nil {
		fields["username"] = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		fields["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = string(hash)
	}
	if input.Role != nil {
		if *input.Role != types.RoleUser && *input.Role != types.RolePrinter {
			return invalidf("unknown role %q", *input.Role)
		}
		fields["role"] = *input.Role
	}
	if len(fields) == 0 {
		return invalidf("no fields to update")
	}

	if _, err := us.userRepo.GetByID(ctx, nil, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("user %s", id)
		}
		return err
	}
	if _, err := us.userRepo.Update(ctx, nil, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictf("username or email already exists")
		}
		return err
	}
	return nil
}

// Delete removes the user and everything they own: colors, materials,
// filament inventory and orders with their child rows.
func (us *userService) Delete(ctx context.Context, id string) error {
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM order_links WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`DELETE FROM order_colors WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)`, id,
		).Error; err != nil {
			return err
		}
		for _, model := range []any{
			&types.Order{},
			&types.UserFilament{},
			&types.Material{},
			&types.Color{},
		} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		rows, err := us.userRepo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFoundf("user %s", id)
		}
		return nil
	})
}

func (us *userService) Rate(ctx context.Context, id string, score float64) (*types.User, error) {
	if score < 0 || score > 10 {
		return nil, invalidf("rating must be between 0 and 10")
	}

	var out *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("user %s", id)
			}
			return err
		}

		current := 0.0
		if user.Rating != nil {
			current = *user.Rating
		}
		next := (current*float64(user.RatingCount) + score) / float64(user.RatingCount+1)

		fields := map[string]any{
			"rating":       next,
			"rating_count": user.RatingCount + 1,
		}
		if _, err := us.userRepo.Update(ctx, tx, id, fields); err != nil {
			return err
		}
		user.Rating = &next
		user.RatingCount++
		out = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
