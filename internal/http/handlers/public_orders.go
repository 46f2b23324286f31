package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/domain/merchandise"
)

type OrdersCreator interface {
	Create(ctx context.Context, req merchandise.CreateOrderRequest) (merchandise.Order, error)
}

type OrdersHandler struct {
	repo   OrdersCreator
	nudger JobNudger
}

func NewOrdersHandler(repo OrdersCreator, nudger JobNudger) *OrdersHandler {
	return &OrdersHandler{repo: repo, nudger: nudger}
}

func (h *OrdersHandler) Create(ctx *gin.Context) {
	var req merchandise.CreateOrderRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	o, err := h.repo.Create(cctx, req)

	if err != nil {
		switch {
		case errors.Is(err, merchandise.ErrProductNotFound):
			RespondNotFound(ctx, "Product not found")
		case errors.Is(err, merchandise.ErrUnavailable):
			RespondConflict(ctx, "Product is not available")
		case errors.Is(err, merchandise.ErrOutOfStock):
			RespondConflict(ctx, "Insufficient stock for the requested quantity")
		default:
			RespondInternal(ctx, err)
		}
		return
	}

	if h.nudger != nil {
		_ = h.nudger.Nudge(cctx)
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "order": o})
}
