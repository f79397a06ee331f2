package services

import (
	"context"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
)

// CartService manages a user's cart lines.
type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService(carts *repositories.CartRepository, products *repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Items returns the user's cart with products preloaded.
func (s *CartService) Items(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.carts.ItemsForUser(ctx, userID)
}

// Add puts quantity of a product into the cart, merging with any
// existing line for the same product. The product must exist.
func (s *CartService) Add(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.carts.Upsert(ctx, userID, productID, quantity)
}

// Remove deletes one cart line owned by the user.
func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	return s.carts.Remove(ctx, userID, itemID)
}
