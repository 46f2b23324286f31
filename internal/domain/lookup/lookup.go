// Package lookup holds small reference tables surfaced on public pages and
// consumed by the registration and checkout forms.
package lookup

import "time"

type AccommodationType struct {
	AccommodationTypeID string    `json:"accommodation_type_id"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	PricePerNight       float64   `json:"price_per_night"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type PaymentMethod struct {
	PaymentMethodID string    `json:"payment_method_id"`
	Name            string    `json:"name"`
	IsEnabled       bool      `json:"is_enabled"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateAccommodationTypeRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=150"`
	Description   string  `json:"description" binding:"omitempty,max=2000"`
	PricePerNight float64 `json:"price_per_night" binding:"min=0"`
}

type CreatePaymentMethodRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	IsEnabled *bool  `json:"is_enabled"`
}
