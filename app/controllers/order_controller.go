package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Store places an order from the caller's cart.
func (c *OrderController) Store(cc *ctx.Context) {
	order, err := c.service.PlaceOrder(cc.Context(), cc.UserID())
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		cc.Error(http.StatusBadRequest, "cart is empty")
	case errors.Is(err, domain.ErrStaleProduct):
		cc.Error(http.StatusConflict, "cart references a product that no longer exists")
	case err != nil:
		cc.Error(http.StatusInternalServerError, "could not place order")
	default:
		cc.Created(order)
	}
}

// Index lists the caller's orders.
func (c *OrderController) Index(cc *ctx.Context) {
	orders, err := c.service.GetUserOrders(cc.Context(), cc.UserID())
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not list orders")
		return
	}
	cc.Success(orders)
}

// Show returns one order with items, products, and payment.
func (c *OrderController) Show(cc *ctx.Context) {
	order, err := c.service.GetOrderDetails(cc.Context(), cc.UserID(), cc.ParamUint("id"))
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Order not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not load order")
		return
	}
	cc.Success(order)
}
