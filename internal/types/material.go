package types

import (
	"time"
)

// Material is the canonical per-user filament record. The
// (user_id, name, color) unique index is the dedup key the colors→materials
// migration relies on.
type Material struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_materials_user_name_color" json:"userId"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_materials_user_name_color" json:"name"`
	Color        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_materials_user_name_color" json:"color"`
	MaterialType string    `gorm:"type:varchar(50);not null;index" json:"materialType"`
	ShopLink     *string   `gorm:"type:text" json:"shopLink"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (Material) TableName() string {
	return "materials"
}
