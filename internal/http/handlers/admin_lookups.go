package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/lookup"
)

type LookupsAdminRepository interface {
	LookupsRepository
	CreateAccommodationType(ctx context.Context, req lookup.CreateAccommodationTypeRequest) (lookup.AccommodationType, error)
	DeleteAccommodationType(ctx context.Context, id string) error
	CreatePaymentMethod(ctx context.Context, req lookup.CreatePaymentMethodRequest) (lookup.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error
}

type LookupsAdminHandler struct {
	repo  LookupsAdminRepository
	cache *cache.Cache
}

func NewLookupsAdminHandler(repo LookupsAdminRepository, c *cache.Cache) *LookupsAdminHandler {
	return &LookupsAdminHandler{repo: repo, cache: c}
}

func (h *LookupsAdminHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

func (h *LookupsAdminHandler) ListAccommodationTypes(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	types, err := h.repo.ListAccommodationTypes(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"accommodation_types": types})
}

func (h *LookupsAdminHandler) CreateAccommodationType(ctx *gin.Context) {
	var req lookup.CreateAccommodationTypeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	a, err := h.repo.CreateAccommodationType(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "accommodation_type": a})
}

func (h *LookupsAdminHandler) DeleteAccommodationType(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		RespondBadRequest(ctx, "ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteAccommodationType(cctx, id); err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *LookupsAdminHandler) ListPaymentMethods(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	methods, err := h.repo.ListPaymentMethods(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}

func (h *LookupsAdminHandler) CreatePaymentMethod(ctx *gin.Context) {
	var req lookup.CreatePaymentMethodRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	m, err := h.repo.CreatePaymentMethod(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "payment_method": m})
}

func (h *LookupsAdminHandler) DeletePaymentMethod(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		RespondBadRequest(ctx, "ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeletePaymentMethod(cctx, id); err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
