package sponsor

import (
	"errors"
	"time"
)

type Sponsor struct {
	SponsorID   string    `json:"sponsor_id"`
	SponsorName string    `json:"sponsor_name"`
	Tier        string    `json:"tier,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("sponsor not found")

type CreateSponsorRequest struct {
	SponsorName string `json:"sponsor_name" binding:"required,min=2,max=150"`
	Tier        string `json:"tier" binding:"omitempty,max=50"`
	Logo        string `json:"logo" binding:"omitempty,max=500"`
	Website     string `json:"website" binding:"omitempty,max=500"`
}

type UpdateSponsorRequest struct {
	SponsorID   string  `json:"sponsor_id"`
	SponsorName *string `json:"sponsor_name" binding:"omitempty,min=2,max=150"`
	Tier        *string `json:"tier" binding:"omitempty,max=50"`
	Logo        *string `json:"logo" binding:"omitempty,max=500"`
	Website     *string `json:"website" binding:"omitempty,max=500"`
}
