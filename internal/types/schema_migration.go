package types

import (
	"time"
)

// SchemaMigration records every applied schema step, replacing the old
// per-request "create table if missing" checks with a one-time, versioned
// log applied at startup.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey" json:"version"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	AppliedAt time.Time `gorm:"not null" json:"appliedAt"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}
