package services

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/jobs"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/gateway"
	"github.com/shashiranjanraj/bazaar/pkg/logger"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/queue"
)

const chargeCurrency = "usd"

// PaymentService charges pending orders through the payment gateway.
type PaymentService struct {
	db       *gorm.DB
	orders   *repositories.OrderRepository
	payments *repositories.PaymentRepository
	users    *repositories.UserRepository
	gateway  gateway.Gateway
	audit    audit.Sink
}

func NewPaymentService(
	db *gorm.DB,
	orders *repositories.OrderRepository,
	payments *repositories.PaymentRepository,
	users *repositories.UserRepository,
	gw gateway.Gateway,
	sink audit.Sink,
) *PaymentService {
	return &PaymentService{db: db, orders: orders, payments: payments, users: users, gateway: gw, audit: sink}
}

// ProcessPayment charges the gateway for a pending order the user owns
// and, on success, marks the order paid and records the payment in the
// same transaction. The order row is held under FOR UPDATE for the
// duration, so a concurrent attempt blocks and then fails the pending
// check: at most one Payment can ever exist per order. A decline or a
// gateway error rolls everything back and leaves the order pending.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID, orderID uint, paymentMethod string) (*models.Payment, error) {
	var payment *models.Payment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		payments := s.payments.WithTx(tx)

		order, err := orders.FindForUserLocked(ctx, userID, orderID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrderNotEligible
		}
		if err != nil {
			return err
		}
		if order.Status != domain.StatusPending {
			return domain.ErrOrderNotEligible
		}

		result, err := s.gateway.Charge(ctx, gateway.ChargeRequest{
			AmountMinor:   int64(math.Round(order.TotalAmount * 100)),
			Currency:      chargeCurrency,
			PaymentMethod: paymentMethod,
			Description:   "bazaar order",
		})
		if err != nil {
			return err
		}
		if result.Declined {
			logger.WithCtx(ctx).Warn("payment declined",
				"order_id", orderID, "reason", result.DeclineReason)
			return domain.ErrPaymentDeclined
		}

		payment = &models.Payment{
			OrderID:   order.ID,
			PaymentID: result.TransactionID,
			Amount:    order.TotalAmount,
			Status:    "completed",
		}
		if err := payments.Create(ctx, payment); err != nil {
			return err
		}
		return orders.UpdateStatus(ctx, order.ID, domain.StatusPaid)
	})
	if err != nil {
		metrics.PaymentsProcessed.WithLabelValues(paymentOutcome(err)).Inc()
		return nil, err
	}

	metrics.PaymentsProcessed.WithLabelValues("completed").Inc()
	s.audit.Record(ctx, "payment.completed", userID, map[string]any{
		"order_id":   orderID,
		"payment_id": payment.PaymentID,
		"amount":     payment.Amount,
	})
	s.dispatchReceipt(ctx, userID, payment)
	return payment, nil
}

// GetPaymentDetails returns the payment for an order the user owns.
func (s *PaymentService) GetPaymentDetails(ctx context.Context, userID, orderID uint) (*models.Payment, error) {
	return s.payments.FindByOrderForUser(ctx, userID, orderID)
}

func (s *PaymentService) dispatchReceipt(ctx context.Context, userID uint, payment *models.Payment) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.WithCtx(ctx).Warn("receipt skipped, user lookup failed", "error", err)
		return
	}
	job := &jobs.PaymentReceiptJob{
		Email:         user.Email,
		OrderID:       payment.OrderID,
		Amount:        payment.Amount,
		TransactionID: payment.PaymentID,
	}
	if err := queue.Dispatch(job); err != nil {
		logger.WithCtx(ctx).Warn("receipt dispatch failed", "error", err)
	}
}

func paymentOutcome(err error) string {
	switch err {
	case domain.ErrOrderNotEligible:
		return "ineligible"
	case domain.ErrPaymentDeclined:
		return "declined"
	default:
		return "error"
	}
}
