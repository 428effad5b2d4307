package interfaces

import (
	"context"

	"ticketing_recurrente/internal/domain/entities"
)

// ICheckoutGateway abstracts the outbound Recurrente REST API.
//
// All calls are plain request/response; webhook processing never goes through
// this interface. GetCheckout returns the raw response map because the
// correlation extractor already knows how to read the gateway's loosely
// structured shapes.

type ICheckoutGateway interface {
	UpsertUser(ctx context.Context, s entities.EventSettings, email, fullName string) (userID string, err error)
	CreateCheckout(ctx context.Context, s entities.EventSettings, req entities.CheckoutRequest) (entities.CheckoutSession, error)
	GetCheckout(ctx context.Context, s entities.EventSettings, checkoutID string) (map[string]any, error)
	RefundPayment(ctx context.Context, s entities.EventSettings, externalPaymentID string, amountCents int64) (map[string]any, error)
}
