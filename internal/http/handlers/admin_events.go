package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/event"
)

type EventsRepository interface {
	List(ctx context.Context) ([]event.Event, error)
	GetByID(ctx context.Context, id string) (event.Event, error)
	Create(ctx context.Context, req event.CreateEventRequest) (event.Event, error)
	Update(ctx context.Context, req event.UpdateEventRequest) (event.Event, error)
	Delete(ctx context.Context, id string) error
}

type EventsHandler struct {
	repo  EventsRepository
	cache *cache.Cache
}

func NewEventsHandler(repo EventsRepository, c *cache.Cache) *EventsHandler {
	return &EventsHandler{repo: repo, cache: c}
}

func (h *EventsHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

func (h *EventsHandler) List(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	events, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventsHandler) Create(ctx *gin.Context) {
	var req event.CreateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	e, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "event": e})
}

// Update takes event_id in the body; the admin form posts the whole record
// back. A request without it is rejected before touching the repo.
func (h *EventsHandler) Update(ctx *gin.Context) {
	var req event.UpdateEventRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.EventID == "" {
		RespondBadRequest(ctx, "Event ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	e, err := h.repo.Update(cctx, req)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

// Delete is idempotent: removing an id that is already gone still reports
// success, matching what the admin UI expects from a double click.
func (h *EventsHandler) Delete(ctx *gin.Context) {
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
