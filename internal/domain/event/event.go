package event

import (
	"errors"
	"time"
)

// Participation tiers a fee can be priced for. The design intends at most
// one fee per tier per event; nothing in the schema enforces it, the fee
// sync logic does.
const (
	ParticipationSolo  = "solo"
	ParticipationDuet  = "duet"
	ParticipationGroup = "group"
)

func IsValidParticipationType(t string) bool {
	switch t {
	case ParticipationSolo, ParticipationDuet, ParticipationGroup:
		return true
	default:
		return false
	}
}

// Fee is a priced participation tier attached to an event via the
// event_fees join table. Fee rows are never mutated in place: the sync
// logic replaces them wholesale, so a FeeID is only stable until the next
// fee edit.
type Fee struct {
	FeeID             string  `json:"fee_id"`
	ParticipationType string  `json:"participation_type"`
	Price             float64 `json:"price"`
	MinMembers        int     `json:"min_members"`
	MaxMembers        int     `json:"max_members"`
}

type Event struct {
	EventID            string    `json:"event_id"`
	EventName          string    `json:"event_name"`
	CategoryID         string    `json:"category_id"`
	CategoryName       string    `json:"category_name,omitempty"`
	EventDate          time.Time `json:"event_date"`
	EventPicture       string    `json:"event_picture,omitempty"`
	Rulebook           string    `json:"rulebook,omitempty"`
	Description        string    `json:"description,omitempty"`
	IsRegistrationOpen bool      `json:"is_registration_open"`
	IsDauFree          bool      `json:"is_dau_free"`
	Fees               []Fee     `json:"fees,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("event not found")

// FeeInput is the client-supplied shape of one fee tier. min/max default
// to 1 when omitted.
type FeeInput struct {
	Type  string  `json:"type" binding:"required,oneof=solo duet group"`
	Price float64 `json:"price" binding:"min=0"`
	Min   *int    `json:"min" binding:"omitempty,min=1"`
	Max   *int    `json:"max" binding:"omitempty,min=1"`
}

type CreateEventRequest struct {
	EventName          string     `json:"event_name" binding:"required,min=2,max=150"`
	CategoryID         string     `json:"category_id" binding:"required"`
	EventDate          time.Time  `json:"event_date" binding:"required"`
	EventPicture       string     `json:"event_picture" binding:"omitempty,max=500"`
	Rulebook           string     `json:"rulebook" binding:"omitempty,max=500"`
	Description        string     `json:"description" binding:"omitempty,max=5000"`
	IsRegistrationOpen *bool      `json:"is_registration_open"`
	IsDauFree          *bool      `json:"is_dau_free"`
	Fees               []FeeInput `json:"fees" binding:"omitempty,dive"`
}

// UpdateEventRequest carries event_id in the body (the admin UI sends the
// whole form back). Pointer fields distinguish "absent" from zero values.
// Fees being non-nil (even an empty slice) triggers the fee replacement.
type UpdateEventRequest struct {
	EventID            string      `json:"event_id"`
	EventName          *string     `json:"event_name" binding:"omitempty,min=2,max=150"`
	CategoryID         *string     `json:"category_id"`
	EventDate          *time.Time  `json:"event_date"`
	EventPicture       *string     `json:"event_picture" binding:"omitempty,max=500"`
	Rulebook           *string     `json:"rulebook" binding:"omitempty,max=500"`
	Description        *string     `json:"description" binding:"omitempty,max=5000"`
	IsRegistrationOpen *bool       `json:"is_registration_open"`
	IsDauFree          *bool       `json:"is_dau_free"`
	Fees               *[]FeeInput `json:"fees" binding:"omitempty,dive"`
}

// HasScalarUpdates reports whether any column outside the fee set changed.
func (r UpdateEventRequest) HasScalarUpdates() bool {
	return r.EventName != nil || r.CategoryID != nil || r.EventDate != nil ||
		r.EventPicture != nil || r.Rulebook != nil || r.Description != nil ||
		r.IsRegistrationOpen != nil || r.IsDauFree != nil
}
