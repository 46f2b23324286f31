package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/event"
	"github.com/nexfest/festhub/internal/domain/lookup"
)

type LookupsRepository interface {
	ListAccommodationTypes(ctx context.Context) ([]lookup.AccommodationType, error)
	ListPaymentMethods(ctx context.Context) ([]lookup.PaymentMethod, error)
}

// CatalogHandler serves the read-only storefront endpoints. Listings go
// through the TTL cache and are delivered with an ETag so the frontend can
// poll cheaply during the festival.
type CatalogHandler struct {
	events      EventsRepository
	categories  CategoriesRepository
	concerts    ConcertsRepository
	sponsors    SponsorsRepository
	merchandise ProductsRepository
	lookups     LookupsRepository
	cache       *cache.Cache
}

func NewCatalogHandler(
	events EventsRepository,
	categories CategoriesRepository,
	concerts ConcertsRepository,
	sponsors SponsorsRepository,
	merchandise ProductsRepository,
	lookups LookupsRepository,
	c *cache.Cache,
) *CatalogHandler {
	return &CatalogHandler{
		events:      events,
		categories:  categories,
		concerts:    concerts,
		sponsors:    sponsors,
		merchandise: merchandise,
		lookups:     lookups,
		cache:       c,
	}
}

// cached wraps a loader with the TTL cache under a fixed key.
func (h *CatalogHandler) cached(ctx *gin.Context, key string, load func(context.Context) (any, error)) (any, bool) {
	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			return v, true
		}
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	v, err := load(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return nil, false
	}

	if h.cache != nil {
		h.cache.Set(key, v)
	}

	return v, true
}

func (h *CatalogHandler) ListEvents(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.events", func(cctx context.Context) (any, error) {
		events, err := h.events.List(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"events": events}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}

func (h *CatalogHandler) GetEvent(ctx *gin.Context) {
	id := ctx.Param("id")

	key := "public.events." + id

	if h.cache != nil {
		if v, ok := h.cache.Get(key); ok {
			RespondJSONWithETag(ctx, http.StatusOK, v)
			return
		}
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	e, err := h.events.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			RespondNotFound(ctx, "Event not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	payload := gin.H{"event": e}

	if h.cache != nil {
		h.cache.Set(key, payload)
	}

	RespondJSONWithETag(ctx, http.StatusOK, payload)
}

func (h *CatalogHandler) ListCategories(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.categories", func(cctx context.Context) (any, error) {
		categories, err := h.categories.List(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"categories": categories}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}

func (h *CatalogHandler) ListConcerts(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.concerts", func(cctx context.Context) (any, error) {
		concerts, err := h.concerts.List(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"concerts": concerts}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}

func (h *CatalogHandler) ListSponsors(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.sponsors", func(cctx context.Context) (any, error) {
		sponsors, err := h.sponsors.List(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"sponsors": sponsors}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}

func (h *CatalogHandler) ListMerchandise(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.merchandise", func(cctx context.Context) (any, error) {
		products, err := h.merchandise.ListProducts(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"products": products}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}

func (h *CatalogHandler) ListAccommodationTypes(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.accommodation_types", func(cctx context.Context) (any, error) {
		types, err := h.lookups.ListAccommodationTypes(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"accommodation_types": types}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}

func (h *CatalogHandler) ListPaymentMethods(ctx *gin.Context) {
	v, ok := h.cached(ctx, "public.payment_methods", func(cctx context.Context) (any, error) {
		methods, err := h.lookups.ListPaymentMethods(cctx)
		if err != nil {
			return nil, err
		}
		return gin.H{"payment_methods": methods}, nil
	})

	if !ok {
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, v)
}
