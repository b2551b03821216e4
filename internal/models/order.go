package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is the header record. Line items live in order_items and carry
// the order id; headers are written once and never updated.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	OrderDate time.Time `json:"order_date" db:"order_date"`
}

// OrderCreate is one requested line of a new order.
type OrderCreate struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}
