package types

import (
	"time"
)

// MaterialType is a controlled vocabulary; the schema step seeds the ten
// defaults. Deletable only while no material references the name.
type MaterialType struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (MaterialType) TableName() string {
	return "material_types"
}

// DefaultMaterialTypes is the seed vocabulary for a fresh database.
var DefaultMaterialTypes = []string{
	"PLA", "PETG", "ABS", "TPU", "ASA", "PC", "Nylon", "Wood", "Metal", "Other",
}
