package notifications

import "context"

type SendRegistrationConfirmationInput struct {
	Email          string
	Name           string
	EventID        string
	RegistrationID string
}

type SendOrderConfirmationInput struct {
	Email     string
	Name      string
	OrderID   string
	ProductID string
	Amount    float64
}

type Notifier interface {
	SendRegistrationConfirmation(ctx context.Context, input SendRegistrationConfirmationInput) error
	SendOrderConfirmation(ctx context.Context, input SendOrderConfirmationInput) error
}
