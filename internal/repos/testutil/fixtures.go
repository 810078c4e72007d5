package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:           "user_" + uuid.NewString()[:8],
		Username:     username,
		Email:        fmt.Sprintf("%s@example.com", username),
		PasswordHash: "hash",
		Role:         types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedColor(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, name, value string) *types.Color {
	tb.Helper()
	c := &types.Color{
		ID:        "color_" + uuid.NewString()[:8],
		UserID:    userID,
		Name:      name,
		Value:     value,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed color: %v", err)
	}
	return c
}

func SeedMaterial(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, name, color string) *types.Material {
	tb.Helper()
	m := &types.Material{
		ID:           "material_" + uuid.NewString()[:8],
		UserID:       userID,
		Name:         name,
		Color:        color,
		MaterialType: "PLA",
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed material: %v", err)
	}
	return m
}

func SeedOrder(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, userName string) *types.Order {
	tb.Helper()
	o := &types.Order{
		ID:       "order_" + uuid.NewString()[:8],
		UserID:   userID,
		UserName: userName,
		Status:   types.OrderStatusCreated,
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed order: %v", err)
	}
	return o
}

func PtrString(v string) *string { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
