package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/pkg/gateway"
)

var dbSeq atomic.Int64

// newTestDB opens a fresh in-memory SQLite database with the full
// schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))
	return db
}

// nopSink swallows audit events.
type nopSink struct{}

func (nopSink) Record(context.Context, string, uint, map[string]any) {}

// fakeGateway scripts gateway outcomes per call.
type fakeGateway struct {
	calls    atomic.Int32
	declined bool
	err      error
	lastReq  gateway.ChargeRequest
}

func (g *fakeGateway) Charge(_ context.Context, req gateway.ChargeRequest) (gateway.ChargeResult, error) {
	g.calls.Add(1)
	g.lastReq = req
	if g.err != nil {
		return gateway.ChargeResult{}, g.err
	}
	if g.declined {
		return gateway.ChargeResult{Declined: true, DeclineReason: "card_declined"}, nil
	}
	return gateway.ChargeResult{TransactionID: fmt.Sprintf("txn_%d", g.calls.Load())}, nil
}

var errGatewayDown = errors.New("gateway unreachable")

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Test User", Email: email, Password: "irrelevant"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, Stock: 100, SKU: fmt.Sprintf("SKU-%s-%d", name, dbSeq.Add(1))}
	require.NoError(t, db.Create(product).Error)
	return product
}

func addCartItem(t *testing.T, db *gorm.DB, userID, productID uint, qty int) {
	t.Helper()
	require.NoError(t, db.Create(&models.CartItem{UserID: userID, ProductID: productID, Quantity: qty}).Error)
}
