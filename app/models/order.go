package models

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/domain"
)

// Order is a placed order. TotalAmount and the item prices are
// snapshots taken at placement time; later catalogue edits do not
// touch them.
type Order struct {
	gorm.Model
	UserID      uint          `gorm:"not null;index" json:"user_id"`
	Status      domain.Status `gorm:"size:50;not null;default:pending;index" json:"status"`
	TotalAmount float64       `gorm:"not null" json:"total_amount"`
	Items       []OrderItem   `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payment     *Payment      `json:"payment,omitempty"`
}

// OrderItem is one product line of an order, with the unit price
// frozen at placement time.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
