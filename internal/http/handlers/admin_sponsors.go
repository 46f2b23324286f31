package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/sponsor"
)

type SponsorsRepository interface {
	List(ctx context.Context) ([]sponsor.Sponsor, error)
	Create(ctx context.Context, req sponsor.CreateSponsorRequest) (sponsor.Sponsor, error)
	Update(ctx context.Context, req sponsor.UpdateSponsorRequest) (sponsor.Sponsor, error)
	Delete(ctx context.Context, id string) error
}

type SponsorsHandler struct {
	repo  SponsorsRepository
	cache *cache.Cache
}

func NewSponsorsHandler(repo SponsorsRepository, c *cache.Cache) *SponsorsHandler {
	return &SponsorsHandler{repo: repo, cache: c}
}

func (h *SponsorsHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

func (h *SponsorsHandler) List(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	sponsors, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"sponsors": sponsors})
}

func (h *SponsorsHandler) Create(ctx *gin.Context) {
	var req sponsor.CreateSponsorRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "sponsor": s})
}

func (h *SponsorsHandler) Update(ctx *gin.Context) {
	var req sponsor.UpdateSponsorRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.SponsorID == "" {
		RespondBadRequest(ctx, "Sponsor ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	s, err := h.repo.Update(cctx, req)

	if err != nil {
		if errors.Is(err, sponsor.ErrNotFound) {
			RespondNotFound(ctx, "Sponsor not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true, "sponsor": s})
}

func (h *SponsorsHandler) Delete(ctx *gin.Context) {
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

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
