package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *services.OrderService {
	return services.NewOrderService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewCartRepository(db),
		repositories.NewProductRepository(db),
		nopSink{},
	)
}

func TestPlaceOrderSnapshotsPricesAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, "alice@example.com")
	keyboard := seedProduct(t, db, "keyboard", 10.00)
	mouse := seedProduct(t, db, "mouse", 2.50)
	addCartItem(t, db, user.ID, keyboard.ID, 2)
	addCartItem(t, db, user.ID, mouse.ID, 2)

	order, err := svc.PlaceOrder(context.Background(), user.ID)
	require.NoError(t, err)

	// 2×10.00 + 2×2.50
	assert.Equal(t, 25.00, order.TotalAmount)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Len(t, order.Items, 2)

	// cart is emptied in the same transaction
	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestPlaceOrderPriceSnapshotSurvivesCatalogueEdit(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "monitor", 279.00)
	addCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.PlaceOrder(context.Background(), user.ID)
	require.NoError(t, err)

	// raise the catalogue price after placement
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("price", 999.00).Error)

	got, err := svc.GetOrderDetails(context.Background(), user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 279.00, got.TotalAmount)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 279.00, got.Items[0].Price)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, "carol@example.com")

	_, err := svc.PlaceOrder(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	// nothing was written
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestPlaceOrderStaleProductAbortsEverything(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, "dave@example.com")
	live := seedProduct(t, db, "hub", 39.00)
	gone := seedProduct(t, db, "stand", 31.75)
	addCartItem(t, db, user.ID, live.ID, 1)
	addCartItem(t, db, user.ID, gone.ID, 1)

	require.NoError(t, db.Delete(&models.Product{}, gone.ID).Error)

	_, err := svc.PlaceOrder(context.Background(), user.ID)
	assert.ErrorIs(t, err, domain.ErrStaleProduct)

	// the whole placement rolled back: no order, cart intact
	var orders, cartRows int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartRows).Error)
	assert.Zero(t, orders)
	assert.EqualValues(t, 2, cartRows)
}

func TestGetOrderDetailsCrossUserReadsAsNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	product := seedProduct(t, db, "keyboard", 89.99)
	addCartItem(t, db, owner.ID, product.ID, 1)

	order, err := svc.PlaceOrder(context.Background(), owner.ID)
	require.NoError(t, err)

	_, err = svc.GetOrderDetails(context.Background(), other.ID, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, "erin@example.com")
	product := seedProduct(t, db, "mouse", 24.50)
	addCartItem(t, db, user.ID, product.ID, 1)

	order, err := svc.PlaceOrder(context.Background(), user.ID)
	require.NoError(t, err)

	// pending → shipped skips paid
	_, err = svc.UpdateStatus(context.Background(), user.ID, order.ID, domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := svc.UpdateStatus(context.Background(), user.ID, order.ID, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)

	// cancelled is terminal
	_, err = svc.UpdateStatus(context.Background(), user.ID, order.ID, domain.StatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)
	user := seedUser(t, db, "frank@example.com")

	_, err := svc.UpdateStatus(context.Background(), user.ID, 1, domain.Status("teleported"))
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
