package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

type processPaymentRequest struct {
	OrderID       uint   `json:"order_id" validate:"required,integer,gte=1"`
	PaymentMethod string `json:"payment_method" validate:"required,max=255"`
}

// Store charges a pending order.
func (c *PaymentController) Store(cc *ctx.Context) {
	var req processPaymentRequest
	if !cc.BindJSON(&req) {
		return
	}
	payment, err := c.service.ProcessPayment(cc.Context(), cc.UserID(), req.OrderID, req.PaymentMethod)
	switch {
	case errors.Is(err, domain.ErrOrderNotEligible):
		cc.NotFound("Order not found or already paid")
	case errors.Is(err, domain.ErrPaymentDeclined):
		cc.Error(http.StatusPaymentRequired, "payment declined")
	case err != nil:
		cc.Error(http.StatusInternalServerError, "payment failed")
	default:
		cc.Success(payment)
	}
}

// Show returns the payment for one of the caller's orders. The path id
// is the order id.
func (c *PaymentController) Show(cc *ctx.Context) {
	payment, err := c.service.GetPaymentDetails(cc.Context(), cc.UserID(), cc.ParamUint("id"))
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Payment not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not load payment")
		return
	}
	cc.Success(payment)
}
