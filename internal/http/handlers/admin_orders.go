package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/domain/merchandise"
)

type OrdersAdminRepository interface {
	List(ctx context.Context, page, limit int) ([]merchandise.Order, int, error)
	Update(ctx context.Context, req merchandise.UpdateOrderRequest) (merchandise.Order, error)
	Delete(ctx context.Context, id string) error
}

type OrdersAdminHandler struct {
	repo OrdersAdminRepository
}

func NewOrdersAdminHandler(repo OrdersAdminRepository) *OrdersAdminHandler {
	return &OrdersAdminHandler{repo: repo}
}

func (h *OrdersAdminHandler) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	orders, total, err := h.repo.List(cctx, page, limit)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
		"limit":  limit,
	})
}

// Update only moves the payment status; everything else on an order is
// immutable once placed.
func (h *OrdersAdminHandler) Update(ctx *gin.Context) {
	var req merchandise.UpdateOrderRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.OrderID == "" {
		RespondBadRequest(ctx, "Order ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	o, err := h.repo.Update(cctx, req)

	if err != nil {
		if errors.Is(err, merchandise.ErrOrderNotFound) {
			RespondNotFound(ctx, "Order not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "order": o})
}

func (h *OrdersAdminHandler) Delete(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		RespondBadRequest(ctx, "ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, id); err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
