package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id        uuid.UUID
	Name      string
	Price     float64
	Category  string
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductUpdate carries a partial update. Nil fields are left untouched.
type ProductUpdate struct {
	Price    *float64
	Category *string
	Stock    *int
}

func (u ProductUpdate) IsEmpty() bool {
	return u.Price == nil && u.Category == nil && u.Stock == nil
}
