package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/repos/testutil"
	"github.com/printforge/printforge-backend/internal/types"
)

func newUserFilamentService(t *testing.T, gdb *gorm.DB) UserFilamentService {
	t.Helper()
	log := testutil.Logger(t)
	return NewUserFilamentService(
		gdb,
		log,
		repos.NewUserFilamentRepo(gdb, log),
		repos.NewUserRepo(gdb, log),
		repos.NewMaterialRepo(gdb, log),
	)
}

func TestAssignMergesQuantity(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newUserFilamentService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "alice")
	material := testutil.SeedMaterial(t, ctx, gdb, user.ID, "Galaxy Black", "#1A1A2E")

	first, err := svc.Assign(ctx, AssignFilamentInput{UserID: user.ID, MaterialID: material.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}
	second, err := svc.Assign(ctx, AssignFilamentInput{UserID: user.ID, MaterialID: material.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second assign created a new row: %q vs %q", second.ID, first.ID)
	}
	if second.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", second.Quantity)
	}

	var count int64
	if err := gdb.Model(&types.UserFilament{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestAssignRequiresUserRole(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newUserFilamentService(t, gdb)

	printer := &types.User{
		ID:           "user_printer",
		Username:     "printshop",
		Email:        "printshop@example.com",
		PasswordHash: "hash",
		Role:         types.RolePrinter,
	}
	if err := gdb.Create(printer).Error; err != nil {
		t.Fatalf("seed printer: %v", err)
	}
	material := testutil.SeedMaterial(t, ctx, gdb, printer.ID, "Silk Gold", "#FFD700")

	_, err := svc.Assign(ctx, AssignFilamentInput{UserID: printer.ID, MaterialID: material.ID, Quantity: 1})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
}

func TestAssignValidation(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newUserFilamentService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "bob")
	material := testutil.SeedMaterial(t, ctx, gdb, user.ID, "Red", "#FF0000")

	if _, err := svc.Assign(ctx, AssignFilamentInput{UserID: user.ID, MaterialID: material.ID, Quantity: 0}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("zero quantity err = %v, want ErrInvalid", err)
	}
	if _, err := svc.Assign(ctx, AssignFilamentInput{UserID: "user_missing", MaterialID: material.ID, Quantity: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Assign(ctx, AssignFilamentInput{UserID: user.ID, MaterialID: "material_missing", Quantity: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing material err = %v, want ErrNotFound", err)
	}
}

func TestUpdateQuantityZeroDeletes(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newUserFilamentService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "cara")
	material := testutil.SeedMaterial(t, ctx, gdb, user.ID, "Blue", "#0000FF")

	uf, err := svc.Assign(ctx, AssignFilamentInput{UserID: user.ID, MaterialID: material.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	if err := svc.UpdateQuantity(ctx, uf.ID, 2); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	details, err := svc.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(details) != 1 || details[0].Quantity != 2 {
		t.Fatalf("details = %+v", details)
	}

	if err := svc.UpdateQuantity(ctx, uf.ID, 0); err != nil {
		t.Fatalf("UpdateQuantity to 0: %v", err)
	}
	details, err = svc.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("zero quantity should delete the row, got %+v", details)
	}
}

func TestListByUserJoinsMaterialFields(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newUserFilamentService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "dana")
	material := testutil.SeedMaterial(t, ctx, gdb, user.ID, "Matte Green", "#00AA00")

	if _, err := svc.Assign(ctx, AssignFilamentInput{UserID: user.ID, MaterialID: material.ID, Quantity: 1}); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	details, err := svc.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	d := details[0]
	if d.Name != "Matte Green" || d.Color != "#00AA00" || d.MaterialType != "PLA" {
		t.Fatalf("joined fields = %+v", d)
	}
}

func TestRemoveMissingFilament(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newUserFilamentService(t, gdb)

	if err := svc.Remove(ctx, "user_filament_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
