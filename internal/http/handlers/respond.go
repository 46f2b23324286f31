package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The error envelope is a flat {"error": string}; the admin frontend keys
// its toasts off that one field.

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

// RespondInternal forwards the underlying error string. The API is consumed
// by a first-party dashboard, surfacing the driver message beats a generic
// "something went wrong" during a live festival.
func RespondInternal(ctx *gin.Context, err error) {
	RespondError(ctx, http.StatusInternalServerError, err.Error())
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message)
}
