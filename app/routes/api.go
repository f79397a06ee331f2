// Package routes wires controllers onto the HTTP router.
package routes

import (
	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/router"
)

// Controllers bundles everything RegisterAPI mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Products     *controllers.ProductController
	Cart         *controllers.CartController
	Orders       *controllers.OrderController
	OrderHistory *controllers.OrderHistoryController
	Payments     *controllers.PaymentController
}

// RegisterAPI mounts the REST API under /api. Everything except
// register and login sits behind JWT auth.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")
	api.Post("/register", "auth.register", ctx.Wrap(c.Auth.Register))
	api.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	api.Get("/products", "products.index", ctx.Wrap(c.Products.Index))
	api.Get("/products/{id}", "products.show", ctx.Wrap(c.Products.Show))

	protected := api.Group("", middleware.Auth)

	protected.Post("/products", "products.store", ctx.Wrap(c.Products.Store))
	protected.Put("/products/{id}", "products.update", ctx.Wrap(c.Products.Update))
	protected.Delete("/products/{id}", "products.destroy", ctx.Wrap(c.Products.Destroy))

	protected.Get("/cart", "cart.index", ctx.Wrap(c.Cart.Index))
	protected.Post("/cart", "cart.store", ctx.Wrap(c.Cart.Store))
	protected.Delete("/cart/{id}", "cart.destroy", ctx.Wrap(c.Cart.Destroy))

	protected.Post("/orders", "orders.store", ctx.Wrap(c.Orders.Store))
	protected.Get("/orders", "orders.index", ctx.Wrap(c.Orders.Index))
	protected.Get("/orders/history", "orders.history", ctx.Wrap(c.OrderHistory.Index))
	protected.Put("/orders/history/{id}/status", "orders.history.status", ctx.Wrap(c.OrderHistory.UpdateStatus))
	protected.Get("/orders/{id}", "orders.show", ctx.Wrap(c.Orders.Show))

	protected.Post("/payments", "payments.store", ctx.Wrap(c.Payments.Store))
	protected.Get("/payments/{id}", "payments.show", ctx.Wrap(c.Payments.Show))
}
