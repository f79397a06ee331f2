package kernel_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/internal/kernel"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/gateway"
)

type stubGateway struct {
	calls atomic.Int32
}

func (g *stubGateway) Charge(_ context.Context, _ gateway.ChargeRequest) (gateway.ChargeResult, error) {
	n := g.calls.Add(1)
	return gateway.ChargeResult{TransactionID: fmt.Sprintf("txn_%d", n)}, nil
}

type envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

var kernelDBSeq atomic.Int64

func newHandler(t *testing.T) (http.Handler, *stubGateway) {
	t.Helper()
	dsn := fmt.Sprintf("file:kernel_test_%d?mode=memory&cache=shared", kernelDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	))
	gw := &stubGateway{}
	h := kernel.Build(kernel.Deps{DB: db, Gateway: gw, Audit: audit.NewLogSink()})
	return h, gw
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/register", "", map[string]any{
		"name":     "Shopper",
		"email":    email,
		"password": "s3cret-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createProduct(t *testing.T, h http.Handler, token string, price float64, sku string) uint {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/products", token, map[string]any{
		"name":  "Widget " + sku,
		"price": price,
		"stock": 10,
		"sku":   sku,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	return product.ID
}

func TestCheckoutFlow(t *testing.T) {
	h, gw := newHandler(t)
	token := registerUser(t, h, "shopper@example.com")

	keyboard := createProduct(t, h, token, 10.00, "KB-1")
	mouse := createProduct(t, h, token, 2.50, "MS-1")

	for id, qty := range map[uint]int{keyboard: 2, mouse: 2} {
		rec, _ := do(t, h, http.MethodPost, "/api/cart", token, map[string]any{
			"product_id": id, "quantity": qty,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	// place the order
	rec, env := do(t, h, http.MethodPost, "/api/orders", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, 25.00, order.TotalAmount)
	assert.EqualValues(t, "pending", order.Status)

	// the cart is now empty, so placing again fails
	rec, _ = do(t, h, http.MethodPost, "/api/orders", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// pay; a processed payment reports 200, not 201
	rec, env = do(t, h, http.MethodPost, "/api/payments", token, map[string]any{
		"order_id": order.ID, "payment_method": "pm_card_visa",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payment models.Payment
	require.NoError(t, json.Unmarshal(env.Data, &payment))
	assert.Equal(t, "completed", payment.Status)

	// paying again reads as not found
	rec, env = do(t, h, http.MethodPost, "/api/payments", token, map[string]any{
		"order_id": order.ID, "payment_method": "pm_card_visa",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found or already paid", env.Message)
	assert.EqualValues(t, 1, gw.calls.Load())

	// payment lookup by order id
	rec, _ = do(t, h, http.MethodGet, fmt.Sprintf("/api/payments/%d", order.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// history shows the paid order
	rec, env = do(t, h, http.MethodGet, "/api/orders/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.EqualValues(t, "paid", history[0].Status)

	// move it along the lifecycle
	rec, _ = do(t, h, http.MethodPut, fmt.Sprintf("/api/orders/history/%d/status", order.ID), token, map[string]any{
		"status": "shipped",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// skipping back to pending is rejected
	rec, env = do(t, h, http.MethodPut, fmt.Sprintf("/api/orders/history/%d/status", order.ID), token, map[string]any{
		"status": "pending",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Errors, "status")
}

func TestAuthRequired(t *testing.T) {
	h, _ := newHandler(t)

	rec, _ := do(t, h, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// catalogue reads stay public
	rec, _ = do(t, h, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCrossUserIsolation(t *testing.T) {
	h, _ := newHandler(t)
	owner := registerUser(t, h, "owner@example.com")
	intruder := registerUser(t, h, "intruder@example.com")

	product := createProduct(t, h, owner, 5.00, "ISO-1")
	rec, _ := do(t, h, http.MethodPost, "/api/cart", owner, map[string]any{
		"product_id": product, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, h, http.MethodPost, "/api/orders", owner, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))

	rec, _ = do(t, h, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), intruder, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/payments", intruder, map[string]any{
		"order_id": order.ID, "payment_method": "pm_card_visa",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFreeProductIsAllowed(t *testing.T) {
	h, _ := newHandler(t)
	token := registerUser(t, h, "free@example.com")

	rec, env := do(t, h, http.MethodPost, "/api/products", token, map[string]any{
		"name":  "Sticker Pack",
		"price": 0.00,
		"stock": 500,
		"sku":   "FREE-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Zero(t, product.Price)

	// negative prices are still rejected
	rec, _ = do(t, h, http.MethodPost, "/api/products", token, map[string]any{
		"name":  "Broken",
		"price": -1.00,
		"stock": 1,
		"sku":   "NEG-1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestValidationErrorEnvelope(t *testing.T) {
	h, _ := newHandler(t)
	token := registerUser(t, h, "val@example.com")

	rec, env := do(t, h, http.MethodPost, "/api/cart", token, map[string]any{
		"product_id": 0, "quantity": 0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Status)
	assert.NotEmpty(t, env.Errors)
}
