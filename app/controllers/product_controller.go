package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/bazaar/app/domain"
	"github.com/shashiranjanraj/bazaar/app/models"
	"github.com/shashiranjanraj/bazaar/app/services"
	"github.com/shashiranjanraj/bazaar/pkg/ctx"
)

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable"`
	Price       float64 `json:"price" validate:"numeric,gte=0"`
	Stock       int     `json:"stock" validate:"integer,gte=0"`
	SKU         string  `json:"sku" validate:"required,max=100"`
}

func (c *ProductController) Index(cc *ctx.Context) {
	page, _ := strconv.Atoi(cc.Query("page"))
	limit, _ := strconv.Atoi(cc.Query("limit"))
	products, total, err := c.service.List(cc.Context(), page, limit)
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not list products")
		return
	}
	cc.Success(map[string]any{"products": products, "total": total})
}

func (c *ProductController) Show(cc *ctx.Context) {
	product, err := c.service.Get(cc.Context(), cc.ParamUint("id"))
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Product not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not load product")
		return
	}
	cc.Success(product)
}

func (c *ProductController) Store(cc *ctx.Context) {
	var req productRequest
	if !cc.BindJSON(&req) {
		return
	}
	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		SKU:         req.SKU,
	}
	if err := c.service.Create(cc.Context(), product); err != nil {
		cc.Error(http.StatusInternalServerError, "could not create product")
		return
	}
	cc.Created(product)
}

func (c *ProductController) Update(cc *ctx.Context) {
	var req productRequest
	if !cc.BindJSON(&req) {
		return
	}
	product, err := c.service.Get(cc.Context(), cc.ParamUint("id"))
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Product not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not load product")
		return
	}
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Stock = req.Stock
	product.SKU = req.SKU
	if err := c.service.Update(cc.Context(), product); err != nil {
		cc.Error(http.StatusInternalServerError, "could not update product")
		return
	}
	cc.Success(product)
}

func (c *ProductController) Destroy(cc *ctx.Context) {
	err := c.service.Delete(cc.Context(), cc.ParamUint("id"))
	if errors.Is(err, domain.ErrNotFound) {
		cc.NotFound("Product not found")
		return
	}
	if err != nil {
		cc.Error(http.StatusInternalServerError, "could not delete product")
		return
	}
	cc.Success(map[string]any{"deleted": true})
}
