package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/domain/registration"
)

type RegistrationsCreator interface {
	Create(ctx context.Context, req registration.CreateRegistrationRequest) (registration.Registration, error)
}

// JobNudger pokes the worker after a job-enqueuing write commits. Best
// effort: the worker polls anyway.
type JobNudger interface {
	Nudge(ctx context.Context) error
}

type RegistrationsHandler struct {
	repo   RegistrationsCreator
	nudger JobNudger
}

func NewRegistrationsHandler(repo RegistrationsCreator, nudger JobNudger) *RegistrationsHandler {
	return &RegistrationsHandler{repo: repo, nudger: nudger}
}

func (h *RegistrationsHandler) Create(ctx *gin.Context) {
	var req registration.CreateRegistrationRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	reg, err := h.repo.Create(cctx, req)

	if err != nil {
		switch {
		case errors.Is(err, registration.ErrNotFound):
			RespondNotFound(ctx, "Event not found")
		case errors.Is(err, registration.ErrRegistrationClosed):
			RespondError(ctx, http.StatusConflict, "Registration is closed for this event")
		case errors.Is(err, registration.ErrFeeNotLinked):
			RespondBadRequest(ctx, "Selected fee does not belong to this event")
		case errors.Is(err, registration.ErrTeamSize):
			RespondBadRequest(ctx, "Team size is outside the bounds of the selected fee")
		default:
			RespondInternal(ctx, err)
		}
		return
	}

	if h.nudger != nil {
		_ = h.nudger.Nudge(cctx)
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "registration": reg})
}
