package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/repo/postgres"
)

type AnalyticsRepository interface {
	Dashboard(ctx context.Context) (postgres.DashboardStats, error)
	RegistrationsByEvent(ctx context.Context) ([]postgres.EventRegistrationCount, error)
}

type AnalyticsHandler struct {
	repo AnalyticsRepository
}

func NewAnalyticsHandler(repo AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{repo: repo}
}

func (h *AnalyticsHandler) Dashboard(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 10*time.Second)
	defer cancel()

	stats, err := h.repo.Dashboard(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	byEvent, err := h.repo.RegistrationsByEvent(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"stats":                  stats,
		"registrations_by_event": byEvent,
	})
}
