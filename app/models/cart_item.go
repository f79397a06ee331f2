package models

import "gorm.io/gorm"

// CartItem is one product line in a user's cart. A user holds at most
// one row per product; adding the same product again bumps Quantity.
type CartItem struct {
	gorm.Model
	UserID    uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
