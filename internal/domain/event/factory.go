package event

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateEventRequest) Event {
	now := time.Now().UTC()

	// is_registration_open defaults to true, is_dau_free to false.
	open := true
	if req.IsRegistrationOpen != nil {
		open = *req.IsRegistrationOpen
	}

	dauFree := false
	if req.IsDauFree != nil {
		dauFree = *req.IsDauFree
	}

	return Event{
		EventID:            uuid.NewString(),
		EventName:          req.EventName,
		CategoryID:         req.CategoryID,
		EventDate:          req.EventDate,
		EventPicture:       req.EventPicture,
		Rulebook:           req.Rulebook,
		Description:        req.Description,
		IsRegistrationOpen: open,
		IsDauFree:          dauFree,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// NewFeeFromInput materializes one fee row; min/max fall back to 1.
func NewFeeFromInput(in FeeInput) Fee {
	min := 1
	if in.Min != nil {
		min = *in.Min
	}

	max := 1
	if in.Max != nil {
		max = *in.Max
	}

	return Fee{
		FeeID:             uuid.NewString(),
		ParticipationType: in.Type,
		Price:             in.Price,
		MinMembers:        min,
		MaxMembers:        max,
	}
}
