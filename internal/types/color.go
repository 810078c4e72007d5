package types

import (
	"time"
)

// Color is the legacy per-user swatch record, superseded by Material but
// still written by the order color resolver. Value holds a hex code or an
// arbitrary label, capped at 50 characters. The (user_id, name) unique index
// collapses concurrent auto-creation of the same name into one row.
type Color struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_colors_user_name" json:"userId"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_colors_user_name" json:"name"`
	Value        string    `gorm:"type:varchar(50);not null" json:"value"`
	FilamentLink *string   `gorm:"type:text" json:"filamentLink"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (Color) TableName() string {
	return "colors"
}
