package registration

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	Name  string `json:"name" binding:"required,min=2,max=150"`
	Email string `json:"email" binding:"omitempty,email"`
}

type Team struct {
	TeamID   string       `json:"team_id"`
	TeamName string       `json:"team_name"`
	EventID  string       `json:"event_id"`
	Members  []TeamMember `json:"members,omitempty"`
}

type Registration struct {
	RegistrationID      string    `json:"registration_id"`
	EventID             string    `json:"event_id"`
	EventName           string    `json:"event_name,omitempty"`
	FeeID               string    `json:"fee_id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone,omitempty"`
	College             string    `json:"college,omitempty"`
	PaymentStatus       string    `json:"payment_status"`
	TeamID              *string   `json:"team_id,omitempty"`
	AccommodationTypeID *string   `json:"accommodation_type_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

var (
	ErrNotFound           = errors.New("registration not found")
	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrFeeNotLinked       = errors.New("fee does not belong to this event")
	ErrTeamSize           = errors.New("team size outside fee member bounds")
)

type CreateRegistrationRequest struct {
	EventID             string       `json:"event_id" binding:"required"`
	FeeID               string       `json:"fee_id" binding:"required"`
	Name                string       `json:"name" binding:"required,min=2,max=150"`
	Email               string       `json:"email" binding:"required,email"`
	Phone               string       `json:"phone" binding:"omitempty,max=20"`
	College             string       `json:"college" binding:"omitempty,max=200"`
	AccommodationTypeID *string      `json:"accommodation_type_id"`
	TeamName            string       `json:"team_name" binding:"omitempty,min=2,max=150"`
	Members             []TeamMember `json:"members" binding:"omitempty,dive"`
}

func NewFromCreateRequest(req CreateRegistrationRequest) Registration {
	return Registration{
		RegistrationID:      uuid.NewString(),
		EventID:             req.EventID,
		FeeID:               req.FeeID,
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		College:             req.College,
		PaymentStatus:       "pending",
		AccommodationTypeID: req.AccommodationTypeID,
		CreatedAt:           time.Now().UTC(),
	}
}

// ListFilter narrows the admin listing; nil means "no filter".
type ListFilter struct {
	EventID       *string
	PaymentStatus *string
	Page          int
	Limit         int
}
