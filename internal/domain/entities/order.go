package entities

import "time"

// OrderStatus is derived from the order's payments by the order workflow, not
// written directly by webhook processing.

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPaid     OrderStatus = "paid"
	OrderStatusCanceled OrderStatus = "canceled"
	OrderStatusExpired  OrderStatus = "expired"
)

// Order is the ticket order owned by the host platform.
//
// Storage model (DynamoDB):
//   - PK: code (unique per organizer/event tenant)
//
// Secret is the order's presale secret, required for customer-facing status
// lookups so that an order code alone cannot be probed.

type Order struct {
	Code       string      `json:"code"`
	Organizer  string      `json:"organizer"`
	Event      string      `json:"event"`
	Status     OrderStatus `json:"status"`
	Secret     string      `json:"secret"`
	Email      string      `json:"email"`
	TotalCents int64       `json:"total_cents"`
	Currency   string      `json:"currency"`
	CreatedAt  time.Time   `json:"created_at"`
}
