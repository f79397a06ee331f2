package models

import "gorm.io/gorm"

// Payment records a successful charge for an order. The unique index on
// OrderID enforces at most one payment per order at the storage level.
type Payment struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;uniqueIndex" json:"order_id"`
	PaymentID string  `gorm:"size:255;not null" json:"payment_id"` // gateway transaction id
	Amount    float64 `gorm:"not null" json:"amount"`
	Status    string  `gorm:"size:50;not null;default:completed" json:"status"`
}
