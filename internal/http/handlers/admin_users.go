package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/domain/user"
)

type UsersAdminRepository interface {
	List(ctx context.Context, page, limit int) ([]user.User, int, error)
}

type UsersAdminHandler struct {
	repo UsersAdminRepository
}

func NewUsersAdminHandler(repo UsersAdminRepository) *UsersAdminHandler {
	return &UsersAdminHandler{repo: repo}
}

func (h *UsersAdminHandler) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.repo.List(cctx, page, limit)

	if err != nil {
		RespondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
