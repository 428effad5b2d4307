package interfaces

import (
	"context"

	"ticketing_recurrente/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// GetByID returns a zero-value Payment (empty ID) when nothing matches.
// ListByOrderCode returns all payments of an order, newest first; the record
// locator applies its provider/state selection chain on top of that list.
// ListByCheckoutID resolves payments by the gateway checkout session id,
// scoped to one organizer/event, newest first; this is the correlation path
// for notifications that carry no order code.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderCode(ctx context.Context, orderCode string) ([]entities.Payment, error)
	ListByCheckoutID(ctx context.Context, organizer, event, checkoutID string) ([]entities.Payment, error)
	UpdateInfo(ctx context.Context, id string, info map[string]any) (entities.Payment, error)
	UpdateState(ctx context.Context, id string, state entities.PaymentState, info map[string]any) (entities.Payment, error)
}
