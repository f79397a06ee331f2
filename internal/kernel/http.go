// Package kernel assembles the HTTP handler: repositories, services,
// controllers, routes, and the global middleware stack.
package kernel

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bazaar/app/controllers"
	"github.com/shashiranjanraj/bazaar/app/repositories"
	"github.com/shashiranjanraj/bazaar/app/routes"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/audit"
	"github.com/shashiranjanraj/bazaar/pkg/gateway"
	"github.com/shashiranjanraj/bazaar/pkg/metrics"
	"github.com/shashiranjanraj/bazaar/pkg/middleware"
	"github.com/shashiranjanraj/bazaar/pkg/reqid"
	"github.com/shashiranjanraj/bazaar/pkg/router"
)

// Deps are the external dependencies the kernel wires together.
type Deps struct {
	DB      *gorm.DB
	Gateway gateway.Gateway
	Audit   audit.Sink
}

// Build constructs the full HTTP handler.
func Build(d Deps) http.Handler {
	users := repositories.NewUserRepository(d.DB)
	products := repositories.NewProductRepository(d.DB)
	carts := repositories.NewCartRepository(d.DB)
	orders := repositories.NewOrderRepository(d.DB)
	payments := repositories.NewPaymentRepository(d.DB)

	authService := services.NewAuthService(users, d.Audit)
	productService := services.NewProductService(products, d.Audit)
	cartService := services.NewCartService(carts, products)
	orderService := services.NewOrderService(d.DB, orders, carts, products, d.Audit)
	paymentService := services.NewPaymentService(d.DB, orders, payments, users, d.Gateway, d.Audit)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:         controllers.NewAuthController(authService),
		Products:     controllers.NewProductController(productService),
		Cart:         controllers.NewCartController(cartService),
		Orders:       controllers.NewOrderController(orderService),
		OrderHistory: controllers.NewOrderHistoryController(orderService),
		Payments:     controllers.NewPaymentController(paymentService),
	})

	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r.Handler()
}
