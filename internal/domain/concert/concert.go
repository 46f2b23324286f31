package concert

import (
	"errors"
	"time"
)

type Artist struct {
	ArtistID   string    `json:"artist_id"`
	ArtistName string    `json:"artist_name"`
	Genre      string    `json:"genre,omitempty"`
	Picture    string    `json:"picture,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Concert struct {
	ConcertID   string    `json:"concert_id"`
	ConcertName string    `json:"concert_name"`
	ConcertDate time.Time `json:"concert_date"`
	Venue       string    `json:"venue,omitempty"`
	ArtistID    *string   `json:"artist_id,omitempty"`
	ArtistName  string    `json:"artist_name,omitempty"`
	TicketPrice float64   `json:"ticket_price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrNotFound       = errors.New("concert not found")
	ErrArtistNotFound = errors.New("artist not found")
)

type CreateConcertRequest struct {
	ConcertName string    `json:"concert_name" binding:"required,min=2,max=150"`
	ConcertDate time.Time `json:"concert_date" binding:"required"`
	Venue       string    `json:"venue" binding:"omitempty,max=200"`
	ArtistID    *string   `json:"artist_id"`
	TicketPrice float64   `json:"ticket_price" binding:"min=0"`
}

type UpdateConcertRequest struct {
	ConcertID   string     `json:"concert_id"`
	ConcertName *string    `json:"concert_name" binding:"omitempty,min=2,max=150"`
	ConcertDate *time.Time `json:"concert_date"`
	Venue       *string    `json:"venue" binding:"omitempty,max=200"`
	ArtistID    *string    `json:"artist_id"`
	TicketPrice *float64   `json:"ticket_price" binding:"omitempty,min=0"`
}

type CreateArtistRequest struct {
	ArtistName string `json:"artist_name" binding:"required,min=2,max=150"`
	Genre      string `json:"genre" binding:"omitempty,max=100"`
	Picture    string `json:"picture" binding:"omitempty,max=500"`
}

type UpdateArtistRequest struct {
	ArtistID   string  `json:"artist_id"`
	ArtistName *string `json:"artist_name" binding:"omitempty,min=2,max=150"`
	Genre      *string `json:"genre" binding:"omitempty,max=100"`
	Picture    *string `json:"picture" binding:"omitempty,max=500"`
}
