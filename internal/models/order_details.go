package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderDetails is one flattened row of the orders×order_items×products
// join. It exists only as a read model for presentation and is never
// persisted.
type OrderDetails struct {
	OrderID            uuid.UUID `json:"order_id"`
	UserID             uuid.UUID `json:"user_id"`
	OrderDate          time.Time `json:"order_date"`
	ProductID          uuid.UUID `json:"product_id"`
	Quantity           int       `json:"quantity"`
	ProductName        *string   `json:"product_name"`
	ProductDescription *string   `json:"product_description"`
	ProductImageSmall  *string   `json:"product_image_small"`
	ProductPrice       *float64  `json:"product_price"`
}

// OrderGroup is the rows of one order, in join order. Groups are
// returned newest order first.
type OrderGroup struct {
	OrderID uuid.UUID      `json:"order_id"`
	Items   []*OrderDetails `json:"items"`
}
