package models

import "gorm.io/gorm"

// Order status lifecycle. Transitions are admin-only.
const (
	OrderPending   = "pending"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderReturned  = "returned"
)

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderShipped, OrderDelivered, OrderReturned:
		return true
	}
	return false
}

// Order is created at checkout from the client's cart. Total is the
// client-computed amount and is immutable once created.
type Order struct {
	gorm.Model
	UserID uint        `gorm:"not null;index" json:"userId"`
	Total  float64     `gorm:"not null" json:"total"`
	Status string      `gorm:"size:50;default:pending" json:"status"`
	Items  []OrderItem `json:"items"`
}

// OrderItem snapshots the unit price at purchase time, decorrelated from
// the live Product.Price.
type OrderItem struct {
	gorm.Model
	OrderID   uint     `gorm:"not null;index" json:"orderId"`
	ProductID uint     `gorm:"not null;index" json:"productId"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
	Product   *Product `json:"product,omitempty"`
}
