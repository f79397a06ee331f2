package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
)

// OrderService turns carts into orders and reports on them.
type OrderService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
	audit    audit.Sink
}

func NewOrderService(
	db *gorm.DB,
	orders *repositories.OrderRepository,
	carts *repositories.CartRepository,
	products *repositories.ProductRepository,
	sink audit.Sink,
) *OrderService {
	return &OrderService{db: db, orders: orders, carts: carts, products: products, audit: sink}
}

// PlaceOrder converts the user's cart into a pending order in one
// transaction: cart rows are read under FOR UPDATE, unit prices are
// snapshotted from the catalogue at this moment, the order and its
// items are created, and the cart is cleared. An empty cart aborts with
// ErrEmptyCart before any write. A cart line whose product has been
// removed aborts the whole placement with ErrStaleProduct.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint) (*models.Order, error) {
	var order *models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)
		orders := s.orders.WithTx(tx)
		products := s.products.WithTx(tx)

		items, err := carts.ItemsForUserLocked(ctx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		var (
			total      float64
			orderItems []models.OrderItem
		)
		for _, item := range items {
			product, err := products.FindByID(ctx, item.ProductID)
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrStaleProduct
			}
			if err != nil {
				return err
			}
			total += product.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
			})
		}

		order = &models.Order{
			UserID:      userID,
			Status:      domain.StatusPending,
			TotalAmount: total,
			Items:       orderItems,
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		return carts.ClearForUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	s.audit.Record(ctx, "order.placed", userID, map[string]any{
		"order_id": order.ID,
		"total":    order.TotalAmount,
		"items":    len(order.Items),
	})
	return order, nil
}

// GetUserOrders lists the user's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ForUser(ctx, userID)
}

// GetOrderDetails returns one order the user owns, with items, product
// rows, and payment. Orders owned by other users read as not found.
func (s *OrderService) GetOrderDetails(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	return s.orders.FindForUser(ctx, userID, orderID)
}

// History returns the user's orders with full detail.
func (s *OrderService) History(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.History(ctx, userID)
}

// UpdateStatus moves an owned order along the status machine. The order
// row is locked so a concurrent payment cannot interleave.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID uint, next domain.Status) (*models.Order, error) {
	if !next.Valid() {
		return nil, domain.ErrInvalidTransition
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		order, err := orders.FindForUserLocked(ctx, userID, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransition(next) {
			return domain.ErrInvalidTransition
		}
		return orders.UpdateStatus(ctx, orderID, next)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "order.status_changed", userID, map[string]any{
		"order_id": orderID,
		"status":   string(next),
	})
	return s.orders.FindForUser(ctx, userID, orderID)
}
