package types

import (
	"time"
)

const (
	RoleUser    = "user"
	RolePrinter = "printer"
)

// User ids are opaque strings generated by the client application, not
// auto-increment integers. Rating is a running average maintained by
// UserService.Rate; nil until the first rating lands.
type User struct {
	ID           string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null;column:password_hash" json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:user" json:"role"`
	Rating       *float64  `gorm:"column:rating" json:"rating"`
	RatingCount  int       `gorm:"not null;default:0" json:"ratingCount"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
