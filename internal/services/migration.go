package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/types"
)

type UserMigrationStats struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Migrated int    `json:"migrated"`
	Skipped  int    `json:"skipped"`
}

type MigrationSummary struct {
	Success  bool                  `json:"success"`
	Message  string                `json:"message"`
	Migrated int                   `json:"migrated"`
	Skipped  int                   `json:"skipped"`
	Total    int                   `json:"total"`
	Users    []*UserMigrationStats `json:"users"`
}

type MigrationService interface {
	// MigrateColors copies every legacy color into the materials table,
	// skipping rows whose (user, name, value) key already has a material.
	// Safe to run any number of times; the second run over the same data
	// migrates nothing.
	MigrateColors(ctx context.Context) (*MigrationSummary, error)
}

type migrationService struct {
	db           *gorm.DB
	log          *logger.Logger
	colorRepo    repos.ColorRepo
	materialRepo repos.MaterialRepo
	userRepo     repos.UserRepo
}

func NewMigrationService(db *gorm.DB, log *logger.Logger, colorRepo repos.ColorRepo, materialRepo repos.MaterialRepo, userRepo repos.UserRepo) MigrationService {
	serviceLog := log.With("service", "MigrationService")
	return &migrationService{
		db:           db,
		log:          serviceLog,
		colorRepo:    colorRepo,
		materialRepo: materialRepo,
		userRepo:     userRepo,
	}
}

// MaterialIDForColor derives the material id from the source color id. The
// derivation is deterministic so a re-run that raced a previous partial run
// converges on the same rows.
func MaterialIDForColor(colorID string) string {
	return "filament_" + colorID
}

func (ms *migrationService) MigrateColors(ctx context.Context) (*MigrationSummary, error) {
	colors, err := ms.colorRepo.ListAllOrdered(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load colors: %w", err)
	}

	if len(colors) == 0 {
		return &MigrationSummary{
			Success: true,
			Message: "No colors found to migrate",
			Users:   []*UserMigrationStats{},
		}, nil
	}

	migrated := 0
	skipped := 0
	perUser := map[string]*UserMigrationStats{}
	userOrder := []string{}

	stats := func(userID string) *UserMigrationStats {
		s, ok := perUser[userID]
		if !ok {
			s = &UserMigrationStats{UserID: userID}
			perUser[userID] = s
			userOrder = append(userOrder, userID)
		}
		return s
	}

	for _, color := range colors {
		exists, err := ms.materialRepo.KeyExists(ctx, nil, color.UserID, color.Name, color.Value)
		if err != nil {
			return nil, fmt.Errorf("check material for color %s: %w", color.ID, err)
		}
		if exists {
			skipped++
			stats(color.UserID).Skipped++
			continue
		}

		var shopLink *string
		if color.FilamentLink != nil && *color.FilamentLink != "" {
			shopLink = color.FilamentLink
		}
		material := &types.Material{
			ID:           MaterialIDForColor(color.ID),
			UserID:       color.UserID,
			Name:         color.Name,
			Color:        color.Value,
			MaterialType: "PLA",
			ShopLink:     shopLink,
			CreatedAt:    color.CreatedAt,
			UpdatedAt:    color.UpdatedAt,
		}
		if err := ms.materialRepo.Create(ctx, nil, material); err != nil {
			// Best-effort batch: a row-level failure (usually the dedup
			// race hitting the unique index) is logged and skipped, the
			// remaining rows still migrate.
			ms.log.Warn("Skipping color after insert failure", "colorId", color.ID, "userId", color.UserID, "error", err)
			skipped++
			stats(color.UserID).Skipped++
			continue
		}
		migrated++
		stats(color.UserID).Migrated++
	}

	usernames := map[string]string{}
	users, err := ms.userRepo.GetByIDs(ctx, nil, userOrder)
	if err != nil {
		return nil, fmt.Errorf("resolve usernames: %w", err)
	}
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	formatted := make([]*UserMigrationStats, 0, len(userOrder))
	for _, userID := range userOrder {
		s := perUser[userID]
		if s.Migrated == 0 && s.Skipped == 0 {
			continue
		}
		s.Username = usernames[userID]
		if s.Username == "" {
			s.Username = "Unknown"
		}
		formatted = append(formatted, s)
	}

	summary := &MigrationSummary{
		Success:  true,
		Message:  fmt.Sprintf("Migrated %d colors to filaments for %d user(s)", migrated, len(formatted)),
		Migrated: migrated,
		Skipped:  skipped,
		Total:    len(colors),
		Users:    formatted,
	}
	ms.log.Info("Color migration finished", "total", summary.Total, "migrated", migrated, "skipped", skipped)
	return summary, nil
}
