package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type CartController struct {
	service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{service: service}
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required,integer,gte=1"`
	Quantity  int  `json:"quantity" validate:"required,integer,gte=1,lte=100"`
}

func (c *CartController) Index(cc *ctx.Context) {
	items, err := c.service.Items(cc.Context(), cc.UserID())
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not load cart")
		return
	}
	cc.Success(items)
}

func (c *CartController) Store(cc *ctx.Context) {
	var req addToCartRequest
	if !cc.BindJSON(&req) {
		return
	}
	item, err := c.service.Add(cc.Context(), cc.UserID(), req.ProductID, req.Quantity)
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Product not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not add to cart")
		return
	}
	cc.Created(item)
}

func (c *CartController) Destroy(cc *ctx.Context) {
	err := c.service.Remove(cc.Context(), cc.UserID(), cc.ParamUint("id"))
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Cart item not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not remove cart item")
		return
	}
	cc.Success(map[string]any{"deleted": true})
}
