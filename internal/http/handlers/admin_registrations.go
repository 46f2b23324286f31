package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/domain/registration"
)

type RegistrationsAdminRepository interface {
	List(ctx context.Context, filter registration.ListFilter) ([]registration.Registration, int, error)
}

type RegistrationsAdminHandler struct {
	repo RegistrationsAdminRepository
}

func NewRegistrationsAdminHandler(repo RegistrationsAdminRepository) *RegistrationsAdminHandler {
	return &RegistrationsAdminHandler{repo: repo}
}

func (h *RegistrationsAdminHandler) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := registration.ListFilter{Page: page, Limit: limit}

	if v := ctx.Query("event_id"); v != "" {
		filter.EventID = &v
	}

	if v := ctx.Query("payment_status"); v != "" {
		filter.PaymentStatus = &v
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	registrations, total, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"registrations": registrations,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}
