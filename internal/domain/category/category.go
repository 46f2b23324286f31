package category

import (
	"errors"
	"time"
)

type Category struct {
	CategoryID    string    `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	Description   string    `json:"description,omitempty"`
	CategoryImage string    `json:"category_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("category not found")

type CreateCategoryRequest struct {
	CategoryName  string `json:"category_name" binding:"required,min=2,max=100"`
	Description   string `json:"description" binding:"omitempty,max=2000"`
	CategoryImage string `json:"category_image" binding:"omitempty,max=500"`
}

type UpdateCategoryRequest struct {
	CategoryID    string  `json:"category_id"`
	CategoryName  *string `json:"category_name" binding:"omitempty,min=2,max=100"`
	Description   *string `json:"description" binding:"omitempty,max=2000"`
	CategoryImage *string `json:"category_image" binding:"omitempty,max=500"`
}
