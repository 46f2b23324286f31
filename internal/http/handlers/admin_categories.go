package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/cache"
	"github.com/nexfest/festhub/internal/domain/category"
)

type CategoriesRepository interface {
	List(ctx context.Context) ([]category.Category, error)
	Create(ctx context.Context, req category.CreateCategoryRequest) (category.Category, error)
	Update(ctx context.Context, req category.UpdateCategoryRequest) (category.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoriesHandler struct {
	repo  CategoriesRepository
	cache *cache.Cache
}

func NewCategoriesHandler(repo CategoriesRepository, c *cache.Cache) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, cache: c}
}

func (h *CategoriesHandler) invalidate() {
	if h.cache != nil {
		h.cache.Clear()
	}
}

func (h *CategoriesHandler) List(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *CategoriesHandler) Create(ctx *gin.Context) {
	var req category.CreateCategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	c, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "category": c})
}

func (h *CategoriesHandler) Update(ctx *gin.Context) {
	var req category.UpdateCategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.CategoryID == "" {
		RespondBadRequest(ctx, "Category ID required")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	c, err := h.repo.Update(cctx, req)

	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}

		RespondInternal(ctx, err)
		return
	}

	h.invalidate()

	ctx.JSON(http.StatusOK, gin.H{"success": true, "category": c})
}

func (h *CategoriesHandler) Delete(ctx *gin.Context) {
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
