package interfaces

import (
	"context"

	"ticketing_recurrente/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order plus the
// event-level ticket quota.
//
// GetByCode returns a zero-value Order (empty Code) when nothing matches the
// code within the given tenant. DecrementQuota performs a conditional
// decrement of the event's remaining capacity and returns ErrQuotaExceeded
// when capacity is gone; an event without a quota record is treated as
// unlimited.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByCode(ctx context.Context, organizer, event, code string) (entities.Order, error)
	UpdateStatus(ctx context.Context, code string, status entities.OrderStatus) (entities.Order, error)
	DecrementQuota(ctx context.Context, organizer, event string) error
}
