package domain

import "time"

// Order status values. Status is an open scalar: only Delivered carries
// meaning for the business logic, other values pass through untouched.
const (
	StatusPending   = 0
	StatusDelivered = 1
)

// Order Model. Total is computed from the cart at creation time and
// never recomputed from live menu prices.
type Order struct {
	ID             uint      `gorm:"primaryKey" json:"id"`              // Primary key
	UserID         uint      `gorm:"index;not null" json:"user_id"`     // Owning customer
	DeliveryCrewID *uint     `gorm:"index" json:"delivery_crew"`        // Assigned crew member, nullable
	Total          float64   `gorm:"not null" json:"total"`             // Immutable sum of order item prices
	Status         int       `gorm:"default:0" json:"status"`           // Open status scalar
	Date           time.Time `gorm:"not null" json:"date"`              // Placement date
	OrderItems     []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"-"` // Itemized lines
}

// OrderItem Model: a cart line frozen at order-creation time.
// Never updated; removed only when its order is deleted.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`          // Primary key
	OrderID    uint    `gorm:"index;not null" json:"order_id"` // Owning order
	MenuItemID uint    `gorm:"not null" json:"menuitem_id"`   // Ordered menu item
	Quantity   int     `gorm:"not null" json:"quantity"`      // Quantity copied from the cart line
	UnitPrice  float64 `gorm:"not null" json:"unit_price"`    // Unit price copied from the cart line
	Price      float64 `gorm:"not null" json:"price"`         // Line price copied from the cart line
}
