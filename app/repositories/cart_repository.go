package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/models"
)

// CartRepository handles database operations for CartItem.
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *CartRepository) WithTx(tx *gorm.DB) *CartRepository {
	return &CartRepository{db: tx}
}

// ItemsForUser returns the user's cart with product rows preloaded.
func (r *CartRepository) ItemsForUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// ItemsForUserLocked reads the user's cart rows under FOR UPDATE. Call
// inside a transaction only.
func (r *CartRepository) ItemsForUserLocked(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := forUpdate(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// Upsert adds quantity to the user's row for the product, creating the
// row when absent.
func (r *CartRepository) Upsert(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
		if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		item.Quantity += quantity
		if err := r.db.WithContext(ctx).Save(&item).Error; err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// Remove deletes one cart row, scoped to the owning user.
func (r *CartRepository) Remove(ctx context.Context, userID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearForUser deletes all of the user's cart rows.
func (r *CartRepository) ClearForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
