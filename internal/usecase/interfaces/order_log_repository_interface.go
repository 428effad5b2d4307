package interfaces

import (
	"context"
	"time"
)

// OrderLogEntry is one audit record on an order's action log.
type OrderLogEntry struct {
	ID        string         `json:"id"`
	OrderCode string         `json:"order_code"`
	Action    string         `json:"action"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// IOrderLogRepository abstracts DynamoDB persistence for order audit entries.

type IOrderLogRepository interface {
	Append(ctx context.Context, entry OrderLogEntry) error
	ListByOrderCode(ctx context.Context, orderCode string) ([]OrderLogEntry, error)
}
