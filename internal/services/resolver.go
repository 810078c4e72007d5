package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printforge/printforge-backend/internal/types"
)

// hexPattern accepts 3 to 6 hex digits, with or without a leading '#'.
var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{3,6}$`)

// HexFromName derives a hex value for an auto-created color: the name itself
// when it already looks like a hex code (normalized to a leading '#'),
// otherwise white.
func HexFromName(name string) string {
	if !hexPattern.MatchString(name) {
		return "#FFFFFF"
	}
	hex := name
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) > 50 {
		hex = hex[:50]
	}
	return hex
}

func newColorID() string {
	return fmt.Sprintf("color_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
}

// ResolveColor resolves a color name for a user to an identifier and hex
// value, creating a Color row when nothing matches. Lookup order: legacy
// colors first, then materials. It never fails with "not found"; creation is
// the fallback. The caller's transaction carries all reads and
// writes, so a newly created row is visible to the rest of the order insert
// and rolls back with it.
//
// If a concurrent request creates the same (user, name) first, the unique
// index rejects our insert and the winner's row is returned instead.
func ResolveColor(ctx context.Context, tx *gorm.DB, userID, name string) (id, hex string, err error) {
	var color types.Color
	err = tx.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&color).Error
	if err == nil {
		return color.ID, color.Value, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", fmt.Errorf("lookup color %q: %w", name, err)
	}

	var material types.Material
	err = tx.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&material).Error
	if err == nil {
		return material.ID, material.Color, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", fmt.Errorf("lookup material %q: %w", name, err)
	}

	created := types.Color{
		ID:     newColorID(),
		UserID: userID,
		Name:   name,
		Value:  HexFromName(name),
	}
	err = tx.WithContext(ctx).Create(&created).Error
	if err == nil {
		return created.ID, created.Value, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the creation race; use the row that won.
		var winner types.Color
		if ferr := tx.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&winner).Error; ferr == nil {
			return winner.ID, winner.Value, nil
		}
	}
	return "", "", fmt.Errorf("create color %q: %w", name, err)
}
