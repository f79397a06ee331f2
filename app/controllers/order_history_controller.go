package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type OrderHistoryController struct {
	service *services.OrderService
}

func NewOrderHistoryController(service *services.OrderService) *OrderHistoryController {
	return &OrderHistoryController{service: service}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,in=pending,paid,shipped,delivered,cancelled"`
}

// Index returns the caller's full order history.
func (c *OrderHistoryController) Index(cc *ctx.Context) {
	orders, err := c.service.History(cc.Context(), cc.UserID())
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not load order history")
		return
	}
	cc.Success(orders)
}

// UpdateStatus moves an order along its lifecycle.
func (c *OrderHistoryController) UpdateStatus(cc *ctx.Context) {
	var req updateStatusRequest
	if !cc.BindJSON(&req) {
		return
	}
	order, err := c.service.UpdateStatus(cc.Context(), cc.UserID(), cc.ParamUint("id"), domain.Status(req.Status))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cc.NotFound("Order not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		cc.ValidationError(map[string]string{"status": "invalid status transition"})
	case err != nil:
		cc.Error(http.StatusInternalServerError, "could not update order status")
	default:
		cc.Success(order)
	}
}
