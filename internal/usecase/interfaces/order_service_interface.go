package interfaces

import (
	"context"
	"errors"

	"ticketing_recurrente/internal/domain/entities"
)

// ErrQuotaExceeded is returned by ConfirmPayment (and IOrderRepository's
// quota decrement) when the event's ticket capacity is exhausted. The caller
// must leave the payment in its prior state; retrying will not change stock.
var ErrQuotaExceeded = errors.New("ticket quota exceeded")

// IOrderService is the host platform's order workflow, consumed as a black
// box by the state transition engine.
//
//   - ConfirmPayment flips the payment to Confirmed and runs the host's
//     order-paid side effects (quota decrement, order status, ticket
//     issuance). It is transactional from the engine's point of view: either
//     the payment ends Confirmed and the order Paid, or nothing changed.
//   - FailPayment flips the payment to Failed; notifyCustomer controls the
//     host's customer email.
//   - LogAction appends an audit entry to the order's action log.

type IOrderService interface {
	ConfirmPayment(ctx context.Context, p entities.Payment) (entities.Payment, error)
	FailPayment(ctx context.Context, p entities.Payment, notifyCustomer bool) (entities.Payment, error)
	LogAction(ctx context.Context, orderCode, action string, data map[string]any) error
}
