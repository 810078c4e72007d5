package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/repos/testutil"
)

func newColorService(t *testing.T, gdb *gorm.DB) ColorService {
	t.Helper()
	log := testutil.Logger(t)
	return NewColorService(gdb, log, repos.NewColorRepo(gdb, log))
}

func TestColorCreateAndGet(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newColorService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "alice")

	link := "https://example.com/spool"
	err := svc.Create(ctx, CreateColorInput{
		ID:           "color_1",
		UserID:       user.ID,
		Name:         "Galaxy Black",
		Value:        "#1A1A2E",
		FilamentLink: &link,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	color, err := svc.Get(ctx, "color_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if color.Name != "Galaxy Black" || color.Value != "#1A1A2E" {
		t.Fatalf("color = %+v", color)
	}
	if color.FilamentLink == nil || *color.FilamentLink != link {
		t.Fatalf("filament link = %v", color.FilamentLink)
	}
}

func TestColorCreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newColorService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "bob")

	if err := svc.Create(ctx, CreateColorInput{ID: "color_1", UserID: user.ID, Name: "Red", Value: "#FF0000"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := svc.Create(ctx, CreateColorInput{ID: "color_2", UserID: user.ID, Name: "Red", Value: "#EE0000"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}

	// Same name for another user is fine.
	other := testutil.SeedUser(t, ctx, gdb, "cara")
	if err := svc.Create(ctx, CreateColorInput{ID: "color_3", UserID: other.ID, Name: "Red", Value: "#FF0000"}); err != nil {
		t.Fatalf("cross-user create: %v", err)
	}
}

func TestColorUpdateClearsFilamentLink(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newColorService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "dana")

	link := "https://example.com/spool"
	if err := svc.Create(ctx, CreateColorInput{ID: "color_1", UserID: user.ID, Name: "Red", Value: "#FF0000", FilamentLink: &link}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	empty := ""
	if err := svc.Update(ctx, "color_1", UpdateColorInput{FilamentLink: &empty}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	color, err := svc.Get(ctx, "color_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if color.FilamentLink != nil {
		t.Fatalf("empty update should clear the link, got %q", *color.FilamentLink)
	}
}

func TestColorDelete(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	svc := newColorService(t, gdb)
	user := testutil.SeedUser(t, ctx, gdb, "erin")

	if err := svc.Create(ctx, CreateColorInput{ID: "color_1", UserID: user.ID, Name: "Red", Value: "#FF0000"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, "color_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "color_1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "color_1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
