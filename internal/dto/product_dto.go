package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProductDTO struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductDTO `json:"products"`
}

type AddProductRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Category string   `json:"category" validate:"required,max=50"`
	Stock    *int     `json:"stock" validate:"required,gte=0"`
}

// UpdateProductRequest is a partial update; only supplied fields are applied.
type UpdateProductRequest struct {
	Price    *float64 `json:"price,omitempty"`
	Category *string  `json:"category,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
}

type ReduceStockRequest struct {
	Amount int `json:"amount"`
}

type ReduceStockResponse struct {
	Message string `json:"message"`
	Stock   int    `json:"stock"`
}
