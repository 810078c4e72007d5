package types

import (
	"time"
)

// UserFilament is the inventory join: one row per (user, material) with a
// quantity. Quantity reaching zero deletes the row instead of keeping it.
type UserFilament struct {
	ID         string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_filaments_user_material" json:"userId"`
	MaterialID string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_filaments_user_material" json:"materialId"`
	Quantity   int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"updatedAt"`
}

func (UserFilament) TableName() string {
	return "user_filaments"
}

// UserFilamentDetail is the inventory row joined with its material. Query
// projection only, never migrated.
type UserFilamentDetail struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	MaterialID   string    `json:"materialId"`
	Quantity     int       `json:"quantity"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	MaterialType string    `json:"materialType"`
	ShopLink     *string   `json:"shopLink"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
