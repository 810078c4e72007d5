package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Filament catalog (legacy + canonical)
		&types.Color{},
		&types.Material{},
		&types.MaterialType{},
		&types.UserFilament{},

		// Orders
		&types.Order{},
		&types.OrderLink{},
		&types.OrderColor{},

		// Schema bookkeeping
		&types.SchemaMigration{},
	)
}

type migrationStep struct {
	Version int
	Name    string
	Run     func(tx *gorm.DB) error
}

// Steps run exactly once each, in version order, recorded in
// schema_migrations. They replace the old per-request table/column existence
// checks: AutoMigrateAll owns table shape, steps own data backfills.
var migrationSteps = []migrationStep{
	{
		Version: 1,
		Name:    "seed_material_types",
		Run: func(tx *gorm.DB) error {
			for _, name := range types.DefaultMaterialTypes {
				mt := types.MaterialType{Name: name}
				if err := tx.Where("name = ?", name).FirstOrCreate(&mt).Error; err != nil {
					return fmt.Errorf("seed material type %s: %w", name, err)
				}
			}
			return nil
		},
	},
	{
		Version: 2,
		Name:    "backfill_order_links_from_model_link",
		Run: func(tx *gorm.DB) error {
			// Orders created before multi-link support only have model_link.
			return tx.Exec(`
				INSERT INTO order_links (order_id, link_url, copies, link_order, printed, created_at)
				SELECT o.id, o.model_link, 1, 0, false, o.created_at
				FROM orders o
				WHERE o.model_link IS NOT NULL AND o.model_link <> ''
				AND o.id NOT IN (SELECT DISTINCT order_id FROM order_links)
			`).Error
		},
	},
	{
		Version: 3,
		Name:    "null_empty_material_shop_links",
		Run: func(tx *gorm.DB) error {
			return tx.Exec(`UPDATE materials SET shop_link = NULL WHERE shop_link = ''`).Error
		},
	},
}

// ApplyMigrations is safe to call from concurrently starting instances: each
// step commits its schema_migrations row in the same transaction as its body,
// so the loser of a duplicate-apply race rolls back and moves on.
func ApplyMigrations(db *gorm.DB, log *logger.Logger) error {
	stepLog := log.With("component", "SchemaMigrations")
	for _, step := range migrationSteps {
		var count int64
		if err := db.Model(&types.SchemaMigration{}).
			Where("version = ?", step.Version).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %d: %w", step.Version, err)
		}
		if count > 0 {
			stepLog.Debug("Migration already applied", "version", step.Version, "name", step.Name)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			rec := types.SchemaMigration{
				Version:   step.Version,
				Name:      step.Name,
				AppliedAt: time.Now().UTC(),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			return step.Run(tx)
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				stepLog.Warn("Migration applied by another instance, skipping", "version", step.Version, "name", step.Name)
				continue
			}
			return fmt.Errorf("apply migration %d (%s): %w", step.Version, step.Name, err)
		}
		stepLog.Info("Applied migration", "version", step.Version, "name", step.Name)
	}
	return nil
}
