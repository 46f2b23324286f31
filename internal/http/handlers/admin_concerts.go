package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/concert"
	"github.com/nexfest/festhub/internal/repo/postgres"
)

type ConcertsRepository interface {
	List(ctx context.Context) ([]concert.Concert, error)
	Create(ctx context.Context, req concert.CreateConcertRequest) (concert.Concert, error)
	Update(ctx context.Context, req concert.UpdateConcertRequest) (concert.Concert, error)
	Delete(ctx context.Context, id string) error

	ListArtists(ctx context.Context) ([]concert.Artist, error)
	CreateArtist(ctx context.Context, req concert.CreateArtistRequest) (concert.Artist, error)
	UpdateArtist(ctx context.Context, req concert.UpdateArtistRequest) (concert.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
}

type ConcertsHandler struct {
	repo  ConcertsRepository
	cache *cache.Cache
}

func NewConcertsHandler(repo ConcertsRepository, c *cache.Cache) *ConcertsHandler {
	return &ConcertsHandler{repo: repo, cache: c}
}

func (h *ConcertsHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

func (h *ConcertsHandler) List(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	concerts, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"concerts": concerts})
}

func (h *ConcertsHandler) Create(ctx *gin.Context) {
	var req concert.CreateConcertRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		// an unknown artist_id surfaces as an FK violation
		if postgres.IsForeignKeyViolation(err) {
			RespondBadRequest(ctx, "Artist not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "concert": c})
}

func (h *ConcertsHandler) Update(ctx *gin.Context) {
	var req concert.UpdateConcertRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.ConcertID == "" {
		RespondBadRequest(ctx, "Concert ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	c, err := h.repo.Update(cctx, req)

	if err != nil {
		if errors.Is(err, concert.ErrNotFound) {
			RespondNotFound(ctx, "Concert not found")
			return
		}

		if postgres.IsForeignKeyViolation(err) {
			RespondBadRequest(ctx, "Artist not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true, "concert": c})
}

func (h *ConcertsHandler) Delete(ctx *gin.Context) {
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

// Artists

func (h *ConcertsHandler) ListArtists(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	artists, err := h.repo.ListArtists(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"artists": artists})
}

func (h *ConcertsHandler) CreateArtist(ctx *gin.Context) {
	var req concert.CreateArtistRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	a, err := h.repo.CreateArtist(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "artist": a})
}

func (h *ConcertsHandler) UpdateArtist(ctx *gin.Context) {
	var req concert.UpdateArtistRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.ArtistID == "" {
		RespondBadRequest(ctx, "Artist ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	a, err := h.repo.UpdateArtist(cctx, req)

	if err != nil {
		if errors.Is(err, concert.ErrArtistNotFound) {
			RespondNotFound(ctx, "Artist not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true, "artist": a})
}

func (h *ConcertsHandler) DeleteArtist(ctx *gin.Context) {
	id := ctx.Query("id")

	if id == "" {
		RespondBadRequest(ctx, "ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteArtist(cctx, id); err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
