package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/merchandise"
)

type ProductsRepository interface {
	ListProducts(ctx context.Context) ([]merchandise.Product, error)
	CreateProduct(ctx context.Context, req merchandise.CreateProductRequest) (merchandise.Product, error)
	UpdateProduct(ctx context.Context, req merchandise.UpdateProductRequest) (merchandise.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type MerchandiseHandler struct {
	repo  ProductsRepository
	cache *cache.Cache
}

func NewMerchandiseHandler(repo ProductsRepository, c *cache.Cache) *MerchandiseHandler {
	return &MerchandiseHandler{repo: repo, cache: c}
}

func (h *MerchandiseHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

func (h *MerchandiseHandler) List(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	products, err := h.repo.ListProducts(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *MerchandiseHandler) Create(ctx *gin.Context) {
	var req merchandise.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	p, err := h.repo.CreateProduct(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "product": p})
}

func (h *MerchandiseHandler) Update(ctx *gin.Context) {
	var req merchandise.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.ProductID == "" {
		RespondBadRequest(ctx, "Product ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	p, err := h.repo.UpdateProduct(cctx, req)

	if err != nil {
		if errors.Is(err, merchandise.ErrProductNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

func (h *MerchandiseHandler) Delete(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		RespondBadRequest(ctx, "ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteProduct(cctx, id); err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
