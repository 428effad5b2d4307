package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrNoApplicablePayment = errors.New("no applicable payment for order")
	ErrNoCorrelationID     = errors.New("notification carries no correlation id")
)

// RecordLocator maps a normalized notification onto exactly one local order
// and at most one payment, degrading through increasingly weak heuristics
// because the gateway's correlation metadata is not consistent across event
// kinds and API versions.

type RecordLocator struct {
	orders   interfaces.IOrderRepository
	payments interfaces.IPaymentRepository
}

func NewRecordLocator(orders interfaces.IOrderRepository, payments interfaces.IPaymentRepository) *RecordLocator {
	return &RecordLocator{orders: orders, payments: payments}
}

// LocateOrder resolves the order a notification refers to within a tenant:
// exact lookup by order code first; when the code is absent or stale but a
// checkout id is available, fall back to the tenant-scoped payment whose
// stored checkout id matches and take its order.
func (l *RecordLocator) LocateOrder(ctx context.Context, organizer, event string, ev entities.NotificationEvent) (entities.Order, error) {
	if ev.OrderCode == "" && ev.CheckoutID == "" {
		return entities.Order{}, ErrNoCorrelationID
	}

	if ev.OrderCode != "" {
		order, err := l.orders.GetByCode(ctx, organizer, event, ev.OrderCode)
		if err != nil {
			return entities.Order{}, err
		}
		if order.Code != "" {
			return order, nil
		}
		if ev.CheckoutID == "" {
			return entities.Order{}, fmt.Errorf("%w: code=%s", ErrOrderNotFound, ev.OrderCode)
		}
		log.Printf("[webhook][locator] order code %s not found, falling back to checkout id %s", ev.OrderCode, ev.CheckoutID)
	}

	candidates, err := l.payments.ListByCheckoutID(ctx, organizer, event, ev.CheckoutID)
	if err != nil {
		return entities.Order{}, err
	}
	for _, p := range candidates {
		if p.Provider != entities.ProviderRecurrente || p.OrderCode == "" {
			continue
		}
		order, err := l.orders.GetByCode(ctx, organizer, event, p.OrderCode)
		if err != nil {
			return entities.Order{}, err
		}
		if order.Code != "" {
			return order, nil
		}
	}
	return entities.Order{}, fmt.Errorf("%w: checkout_id=%s", ErrOrderNotFound, ev.CheckoutID)
}

// LocatePayment picks the payment a notification refers to, trying each
// strategy only when the previous one yields nothing:
//
//  1. exact match on the internal payment id from metadata
//  2. payment whose stored metadata contains the external checkout id
//  3. payment whose stored metadata contains the external payment id
//  4. most recent Pending payment for this provider
//  5. most recent payment for this provider regardless of state
//
// Step 5 can mis-attribute a notification when an order accumulated several
// historical attempts; it is a deliberate last resort inherited from field
// incidents and can be switched off per tenant (settings.DisableAnyStateFallback).
func (l *RecordLocator) LocatePayment(ctx context.Context, order entities.Order, ev entities.NotificationEvent, allowAnyState bool) (entities.Payment, error) {
	candidates, err := l.payments.ListByOrderCode(ctx, order.Code)
	if err != nil {
		return entities.Payment{}, err
	}
	return SelectPayment(candidates, ev, allowAnyState)
}

// SelectPayment is the pure selection chain over an order's payments, newest
// first. Split out so the fallback behavior is testable without storage.
func SelectPayment(candidates []entities.Payment, ev entities.NotificationEvent, allowAnyState bool) (entities.Payment, error) {
	provider := make([]entities.Payment, 0, len(candidates))
	for _, p := range candidates {
		if p.Provider == entities.ProviderRecurrente {
			provider = append(provider, p)
		}
	}

	if ev.LocalPaymentID != "" {
		for _, p := range provider {
			if p.ID == ev.LocalPaymentID {
				return p, nil
			}
		}
	}

	if ev.CheckoutID != "" {
		for _, p := range provider {
			if paymentInfoContains(p, ev.CheckoutID) {
				return p, nil
			}
		}
	}

	if ev.ExternalPaymentID != "" {
		for _, p := range provider {
			if paymentInfoContains(p, ev.ExternalPaymentID) {
				return p, nil
			}
		}
	}

	for _, p := range provider {
		if p.State == entities.PaymentStatePending {
			return p, nil
		}
	}

	if allowAnyState && len(provider) > 0 {
		p := provider[0]
		log.Printf("[webhook][locator] fallback match without filters payment_id=%s state=%s order=%s", p.ID, p.State, p.OrderCode)
		return p, nil
	}

	return entities.Payment{}, fmt.Errorf("%w: order=%s", ErrNoApplicablePayment, ev.OrderCode)
}

// paymentInfoContains reports whether any stored metadata value mentions the
// given gateway id.
func paymentInfoContains(p entities.Payment, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range p.Info {
		if s, ok := v.(string); ok && strings.Contains(s, id) {
			return true
		}
	}
	return false
}
