package types

import (
	"time"
)

const OrderStatusCreated = "Created"

// Order is the parent row; links and color tags live in their own tables and
// are written atomically with the order. ModelLink mirrors the first link for
// clients that predate multi-link orders.
type Order struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(50);not null;index" json:"userId"`
	UserName  string    `gorm:"type:varchar(100);not null" json:"userName"`
	ModelLink string    `gorm:"type:text" json:"modelLink"`
	Comment   *string   `gorm:"type:text" json:"comment"`
	Status    string    `gorm:"type:varchar(50);not null;default:Created" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLink is one model file attached to an order. LinkOrder preserves the
// submission order; Printed tracks each file independently.
type OrderLink struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string    `gorm:"type:varchar(50);not null;index" json:"orderId"`
	LinkURL   string    `gorm:"type:text;not null" json:"url"`
	Copies    int       `gorm:"not null;default:1" json:"copies"`
	Printed   bool      `gorm:"not null;default:false" json:"printed"`
	LinkOrder int       `gorm:"not null;default:0;index" json:"linkOrder"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (OrderLink) TableName() string {
	return "order_links"
}

// OrderColor tags an order with a color name. ColorID is a best-effort
// cross-reference into colors/materials; the name is the durable value.
type OrderColor struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   string  `gorm:"type:varchar(50);not null;index" json:"orderId"`
	ColorID   *string `gorm:"type:varchar(50)" json:"colorId"`
	ColorName string  `gorm:"type:varchar(100);not null" json:"colorName"`
}

func (OrderColor) TableName() string {
	return "order_colors"
}
