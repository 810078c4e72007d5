package services

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/repos/testutil"
	"github.com/printforge/printforge-backend/internal/types"
)

func newMigrationService(t *testing.T, gdb *gorm.DB) MigrationService {
	t.Helper()
	log := testutil.Logger(t)
	return NewMigrationService(
		gdb,
		log,
		repos.NewColorRepo(gdb, log),
		repos.NewMaterialRepo(gdb, log),
		repos.NewUserRepo(gdb, log),
	)
}

func TestMigrateColorsEmpty(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newMigrationService(t, gdb)

	summary, err := svc.MigrateColors(ctx)
	if err != nil {
		t.Fatalf("MigrateColors: %v", err)
	}
	if !summary.Success {
		t.Fatalf("expected success")
	}
	if summary.Message != "No colors found to migrate" {
		t.Fatalf("message = %q", summary.Message)
	}
	if summary.Migrated != 0 || summary.Skipped != 0 || len(summary.Users) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestMigrateColorsCopiesRows(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newMigrationService(t, gdb)

	user := testutil.SeedUser(t, ctx, gdb, "alice")
	color := testutil.SeedColor(t, ctx, gdb, user.ID, "Galaxy Black", "#1A1A2E")
	color.FilamentLink = testutil.PtrString("https://example.com/spool")
	if err := gdb.Save(color).Error; err != nil {
		t.Fatalf("update color: %v", err)
	}

	summary, err := svc.MigrateColors(ctx)
	if err != nil {
		t.Fatalf("MigrateColors: %v", err)
	}
	if summary.Migrated != 1 || summary.Skipped != 0 || summary.Total != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Message != "Migrated 1 colors to filaments for 1 user(s)" {
		t.Fatalf("message = %q", summary.Message)
	}
	if len(summary.Users) != 1 || summary.Users[0].Username != "alice" || summary.Users[0].Migrated != 1 {
		t.Fatalf("per-user stats = %+v", summary.Users[0])
	}

	var material types.Material
	if err := gdb.Where("id = ?", MaterialIDForColor(color.ID)).First(&material).Error; err != nil {
		t.Fatalf("migrated material missing: %v", err)
	}
	if material.UserID != user.ID || material.Name != "Galaxy Black" || material.Color != "#1A1A2E" {
		t.Fatalf("material fields = %+v", material)
	}
	if material.MaterialType != "PLA" {
		t.Fatalf("material type = %q, want PLA", material.MaterialType)
	}
	if material.ShopLink == nil || *material.ShopLink != "https://example.com/spool" {
		t.Fatalf("shop link not carried over: %v", material.ShopLink)
	}
	if !material.CreatedAt.Equal(color.CreatedAt) {
		t.Fatalf("created_at not preserved: %v vs %v", material.CreatedAt, color.CreatedAt)
	}
}

func TestMigrateColorsEmptyShopLinkBecomesNull(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newMigrationService(t, gdb)

	user := testutil.SeedUser(t, ctx, gdb, "bob")
	color := testutil.SeedColor(t, ctx, gdb, user.ID, "Plain White", "#FFFFFF")
	color.FilamentLink = testutil.PtrString("")
	if err := gdb.Save(color).Error; err != nil {
		t.Fatalf("update color: %v", err)
	}

	if _, err := svc.MigrateColors(ctx); err != nil {
		t.Fatalf("MigrateColors: %v", err)
	}

	var material types.Material
	if err := gdb.Where("id = ?", MaterialIDForColor(color.ID)).First(&material).Error; err != nil {
		t.Fatalf("migrated material missing: %v", err)
	}
	if material.ShopLink != nil {
		t.Fatalf("empty shop link should be NULL, got %q", *material.ShopLink)
	}
}

func TestMigrateColorsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newMigrationService(t, gdb)

	user := testutil.SeedUser(t, ctx, gdb, "cara")
	testutil.SeedColor(t, ctx, gdb, user.ID, "Red", "#FF0000")
	testutil.SeedColor(t, ctx, gdb, user.ID, "Blue", "#0000FF")

	first, err := svc.MigrateColors(ctx)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Migrated != 2 {
		t.Fatalf("first run migrated %d, want 2", first.Migrated)
	}

	second, err := svc.MigrateColors(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Migrated != 0 || second.Skipped != 2 {
		t.Fatalf("second run = %+v", second)
	}

	var count int64
	if err := gdb.Model(&types.Material{}).Count(&count).Error; err != nil {
		t.Fatalf("count materials: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 materials after re-run, got %d", count)
	}
}

func TestMigrateColorsSkipsExistingMaterialKey(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newMigrationService(t, gdb)

	user := testutil.SeedUser(t, ctx, gdb, "dana")
	testutil.SeedColor(t, ctx, gdb, user.ID, "Gold", "#FFD700")
	// A hand-created material with the same (user, name, color) key.
	testutil.SeedMaterial(t, ctx, gdb, user.ID, "Gold", "#FFD700")

	summary, err := svc.MigrateColors(ctx)
	if err != nil {
		t.Fatalf("MigrateColors: %v", err)
	}
	if summary.Migrated != 0 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Users) != 1 || summary.Users[0].Skipped != 1 {
		t.Fatalf("per-user stats = %+v", summary.Users)
	}
}

func TestMigrateColorsUnknownUsername(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newMigrationService(t, gdb)

	// Color row whose user no longer exists.
	orphan := &types.Color{
		ID:     "color_orphan",
		UserID: "user_gone",
		Name:   "Ghost Gray",
		Value:  "#808080",
	}
	if err := gdb.Create(orphan).Error; err != nil {
		t.Fatalf("seed orphan color: %v", err)
	}

	summary, err := svc.MigrateColors(ctx)
	if err != nil {
		t.Fatalf("MigrateColors: %v", err)
	}
	if len(summary.Users) != 1 || summary.Users[0].Username != "Unknown" {
		t.Fatalf("per-user stats = %+v", summary.Users)
	}
}
