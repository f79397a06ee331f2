package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/auth"
	"github.com/shashiranjanraj/bazaar/pkg/cache"
)

const productCacheTTL = 5 * time.Minute

// ProductService manages the catalogue. Single-product reads go through
// the Redis cache; writes invalidate it.
type ProductService struct {
	products *repositories.ProductRepository
	audit    audit.Sink
}

func NewProductService(products *repositories.ProductRepository, sink audit.Sink) *ProductService {
	return &ProductService{products: products, audit: sink}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

// List returns a page of products with the total count.
func (s *ProductService) List(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	return s.products.All(ctx, page, limit)
}

// Get returns one product, served from cache when possible.
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	var cached models.Product
	if cache.Get(productCacheKey(id), &cached) {
		return &cached, nil
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(productCacheKey(id), product, productCacheTTL)
	return product, nil
}

// Create adds a product to the catalogue.
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := s.products.Create(ctx, product); err != nil {
		return err
	}
	s.audit.Record(ctx, "product.created", auth.UserID(ctx), map[string]any{"product_id": product.ID, "sku": product.SKU})
	return nil
}

// Update saves the product and drops its cache entry.
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.audit.Record(ctx, "product.updated", auth.UserID(ctx), map[string]any{"product_id": product.ID})
	return cache.Forget(productCacheKey(product.ID))
}

// Delete removes the product and drops its cache entry.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, "product.deleted", auth.UserID(ctx), map[string]any{"product_id": id})
	return cache.Forget(productCacheKey(id))
}
