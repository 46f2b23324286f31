package jobs

import "time"

// Payloads stay minimal and ID-based; the worker loads details from the DB
// when it needs more than what is embedded here.

type RegistrationConfirmationPayload struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	RequestedAt    time.Time `json:"requested_at"`
}

type OrderConfirmationPayload struct {
	OrderID     string    `json:"order_id"`
	ProductID   string    `json:"product_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Amount      float64   `json:"amount"`
	RequestedAt time.Time `json:"requested_at"`
}
