package merchandise

import (
	"errors"
	"time"
)

// Payment lifecycle shared with registrations.
const (
	PaymentPending = "pending"
	PaymentDone    = "done"
	PaymentFailed  = "failed"
)

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentDone, PaymentFailed:
		return true
	default:
		return false
	}
}

type Product struct {
	ProductID   string    `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Sizes       []string  `json:"sizes,omitempty"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Order struct {
	OrderID       string    `json:"order_id"`
	ProductID     string    `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	Quantity      int       `json:"quantity"`
	Size          string    `json:"size,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOutOfStock      = errors.New("insufficient stock")
	ErrUnavailable     = errors.New("product not available")
)

type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=150"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Price       float64  `json:"price" binding:"min=0"`
	Sizes       []string `json:"sizes" binding:"omitempty,dive,max=10"`
	Image       string   `json:"image" binding:"omitempty,max=500"`
	Stock       int      `json:"stock" binding:"min=0"`
	IsAvailable *bool    `json:"is_available"`
}

type UpdateProductRequest struct {
	ProductID   string    `json:"product_id"`
	Name        *string   `json:"name" binding:"omitempty,min=2,max=150"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Price       *float64  `json:"price" binding:"omitempty,min=0"`
	Sizes       *[]string `json:"sizes" binding:"omitempty,dive,max=10"`
	Image       *string   `json:"image" binding:"omitempty,max=500"`
	Stock       *int      `json:"stock" binding:"omitempty,min=0"`
	IsAvailable *bool     `json:"is_available"`
}

// CreateOrderRequest is the storefront checkout payload. Amount is computed
// server side from the product price, never trusted from the client.
type CreateOrderRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1,max=20"`
	Size          string `json:"size" binding:"omitempty,max=10"`
	Name          string `json:"name" binding:"required,min=2,max=150"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"omitempty,max=20"`
	PaymentMethod string `json:"payment_method" binding:"required,max=50"`
}

type UpdateOrderRequest struct {
	OrderID       string  `json:"order_id"`
	PaymentStatus *string `json:"payment_status" binding:"omitempty,oneof=pending done failed"`
}
