package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/services"
)

func newPaymentService(db *gorm.DB, gw *fakeGateway) *services.PaymentService {
	return services.NewPaymentService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewPaymentRepository(db),
		repositories.NewUserRepository(db),
		gw,
		nopSink{},
	)
}

// placePendingOrder seeds a user with a cart and places an order.
func placePendingOrder(t *testing.T, db *gorm.DB, email string, price float64) (*models.User, *models.Order) {
	t.Helper()
	user := seedUser(t, db, email)
	product := seedProduct(t, db, "widget", price)
	addCartItem(t, db, user.ID, product.ID, 1)
	order, err := newOrderService(db).PlaceOrder(context.Background(), user.ID)
	require.NoError(t, err)
	return user, order
}

func TestProcessPaymentHappyPath(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := newPaymentService(db, gw)
	user, order := placePendingOrder(t, db, "alice@example.com", 25.00)

	payment, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	require.NoError(t, err)

	assert.Equal(t, order.ID, payment.OrderID)
	assert.Equal(t, "completed", payment.Status)
	assert.Equal(t, 25.00, payment.Amount)
	assert.NotEmpty(t, payment.PaymentID)

	// gateway was charged in minor units
	assert.EqualValues(t, 2500, gw.lastReq.AmountMinor)
	assert.Equal(t, "usd", gw.lastReq.Currency)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, domain.StatusPaid, got.Status)
}

func TestProcessPaymentSecondAttemptIneligible(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := newPaymentService(db, gw)
	user, order := placePendingOrder(t, db, "bob@example.com", 10.00)

	_, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	require.NoError(t, err)

	_, err = svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	assert.ErrorIs(t, err, domain.ErrOrderNotEligible)

	// exactly one payment row, one charge
	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&payments).Error)
	assert.EqualValues(t, 1, payments)
	assert.EqualValues(t, 1, gw.calls.Load())
}

func TestProcessPaymentDeclineLeavesOrderPending(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{declined: true}
	svc := newPaymentService(db, gw)
	user, order := placePendingOrder(t, db, "carol@example.com", 10.00)

	_, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, domain.StatusPending, got.Status)

	var payments int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&payments).Error)
	assert.Zero(t, payments)

	// a retry after the decline succeeds
	gw.declined = false
	payment, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)
}

func TestProcessPaymentGatewayErrorLeavesOrderPending(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{err: errGatewayDown}
	svc := newPaymentService(db, gw)
	user, order := placePendingOrder(t, db, "dave@example.com", 10.00)

	_, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOrderNotEligible)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestProcessPaymentForeignOrderIneligible(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := newPaymentService(db, gw)
	_, order := placePendingOrder(t, db, "owner@example.com", 10.00)
	intruder := seedUser(t, db, "intruder@example.com")

	_, err := svc.ProcessPayment(context.Background(), intruder.ID, order.ID, "pm_card_visa")
	assert.ErrorIs(t, err, domain.ErrOrderNotEligible)
	assert.Zero(t, gw.calls.Load())
}

func TestProcessPaymentStorageFailureIsNotIneligible(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := newPaymentService(db, gw)
	user, order := placePendingOrder(t, db, "hank@example.com", 10.00)

	// break the storage layer; the failure must surface as a real
	// error, not as the 404-class "not eligible" outcome
	require.NoError(t, db.Migrator().DropTable("orders"))

	_, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrOrderNotEligible)
	assert.Zero(t, gw.calls.Load())
}

func TestProcessPaymentMissingOrderIneligible(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := newPaymentService(db, gw)
	user := seedUser(t, db, "erin@example.com")

	_, err := svc.ProcessPayment(context.Background(), user.ID, 9999, "pm_card_visa")
	assert.ErrorIs(t, err, domain.ErrOrderNotEligible)
}

func TestGetPaymentDetailsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	gw := &fakeGateway{}
	svc := newPaymentService(db, gw)
	user, order := placePendingOrder(t, db, "frank@example.com", 10.00)
	other := seedUser(t, db, "grace@example.com")

	_, err := svc.ProcessPayment(context.Background(), user.ID, order.ID, "pm_card_visa")
	require.NoError(t, err)

	payment, err := svc.GetPaymentDetails(context.Background(), user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, payment.OrderID)

	_, err = svc.GetPaymentDetails(context.Background(), other.ID, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
