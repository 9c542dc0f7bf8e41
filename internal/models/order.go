package models

import "time"

// PizzaSize is the size category of an ordered pizza
type PizzaSize string

const (
	SizeSmall      PizzaSize = "SMALL"
	SizeMedium     PizzaSize = "MEDIUM"
	SizeLarge      PizzaSize = "LARGE"
	SizeExtraLarge PizzaSize = "EXTRA-LARGE"
)

// Valid reports whether the size is one of the known categories
func (s PizzaSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

// OrderStatus is the delivery state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusInTransit OrderStatus = "IN-TRANSIT"
	StatusDelivered OrderStatus = "DELIVERED"
)

// Order represents a pizza order placed by a user
type Order struct {
	ID        int64       `json:"id" db:"id"`
	Quantity  int         `json:"quantity" db:"quantity"`
	PizzaSize PizzaSize   `json:"pizza_size" db:"pizza_size"`
	Status    OrderStatus `json:"order_status" db:"order_status"`
	UserID    int64       `json:"user_id" db:"user_id"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
