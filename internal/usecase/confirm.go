package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"
)

var (
	// ErrNotConfirmable means the payment sits in a state the one-way machine
	// cannot confirm from (canceled, failed).
	ErrNotConfirmable = errors.New("payment cannot be confirmed from its current state")

	// ErrConfirmContended means another delivery holds the confirmation lock
	// and the payment did not turn Confirmed within the wait window. The
	// caller may let the gateway retry.
	ErrConfirmContended = errors.New("payment confirmation is being processed concurrently")
)

const (
	confirmLockPrefix = "recurrente:payment:confirm:lock:"
	confirmLockTTL    = 30 * time.Second
	contentionWait    = 500 * time.Millisecond

	actionPaymentConfirmed = "recurrente.payment.confirmed"
	actionPaymentFailed    = "recurrente.payment.failed"
)

// PaymentConfirmer applies one-way state transitions to payments, guaranteeing
// at-most-once confirmation under concurrent webhook deliveries.
//
// The guard is layered: a cache lease (SetIfAbsent, 30s TTL) serializes the
// confirm path, and a post-lock re-read of the record defends against the
// staleness window before the lease was taken. Confirmed and Failed are
// absorbing regardless of delivery order.

type PaymentConfirmer struct {
	payments interfaces.IPaymentRepository
	host     interfaces.IOrderService
	cache    interfaces.ICache

	lockTTL time.Duration
	wait    time.Duration
	sleep   func(time.Duration)
	now     func() time.Time
}

func NewPaymentConfirmer(payments interfaces.IPaymentRepository, host interfaces.IOrderService, cache interfaces.ICache) *PaymentConfirmer {
	return &PaymentConfirmer{
		payments: payments,
		host:     host,
		cache:    cache,
		lockTTL:  confirmLockTTL,
		wait:     contentionWait,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// Confirm transitions the payment to Confirmed exactly once.
//
// Already Confirmed is an idempotent success. A payment outside
// Pending/Created fails with ErrNotConfirmable. Quota exhaustion on the host
// side leaves the payment in its prior state and returns ErrQuotaExceeded.
// The lock is released on every exit path.
func (c *PaymentConfirmer) Confirm(ctx context.Context, payment entities.Payment, ev entities.NotificationEvent) error {
	if payment.State == entities.PaymentStateConfirmed {
		log.Printf("[payment][confirm] already confirmed payment_id=%s order=%s", payment.ID, payment.OrderCode)
		return nil
	}
	if !payment.IsConfirmable() {
		log.Printf("[payment][confirm] not confirmable payment_id=%s state=%s", payment.ID, payment.State)
		return fmt.Errorf("%w: state=%s", ErrNotConfirmable, payment.State)
	}

	lockKey := confirmLockPrefix + payment.ID
	acquired, err := c.cache.SetIfAbsent(ctx, lockKey, "locked", c.lockTTL)
	if err != nil {
		return fmt.Errorf("acquiring confirmation lock for payment %s: %w", payment.ID, err)
	}
	if !acquired {
		log.Printf("[payment][confirm] lock contended, waiting payment_id=%s", payment.ID)
		c.sleep(c.wait)
		fresh, err := c.payments.GetByID(ctx, payment.ID)
		if err != nil {
			return err
		}
		if fresh.State == entities.PaymentStateConfirmed {
			log.Printf("[payment][confirm] confirmed by concurrent delivery payment_id=%s", payment.ID)
			return nil
		}
		return fmt.Errorf("%w: payment=%s", ErrConfirmContended, payment.ID)
	}
	defer func() {
		if err := c.cache.Delete(ctx, lockKey); err != nil {
			log.Printf("[payment][confirm] lock release failed, TTL will expire it payment_id=%s err=%v", payment.ID, err)
		}
	}()

	// Re-read under the lock; the record may have moved while we raced for it.
	fresh, err := c.payments.GetByID(ctx, payment.ID)
	if err != nil {
		return err
	}
	if fresh.ID == "" {
		fresh = payment
	}
	if fresh.State == entities.PaymentStateConfirmed {
		return nil
	}
	if !fresh.IsConfirmable() {
		return fmt.Errorf("%w: state=%s", ErrNotConfirmable, fresh.State)
	}

	fresh.MergeInfo(c.enrichment(ev))
	if _, err := c.payments.UpdateInfo(ctx, fresh.ID, fresh.Info); err != nil {
		return fmt.Errorf("persisting confirmation metadata for payment %s: %w", fresh.ID, err)
	}

	confirmed, err := c.host.ConfirmPayment(ctx, fresh)
	if err != nil {
		if errors.Is(err, interfaces.ErrQuotaExceeded) {
			log.Printf("[payment][confirm] quota exceeded, payment left in state %s payment_id=%s order=%s", fresh.State, fresh.ID, fresh.OrderCode)
			fresh.SetInfo("failure_reason", "ticket quota exceeded")
			if _, infoErr := c.payments.UpdateInfo(ctx, fresh.ID, fresh.Info); infoErr != nil {
				log.Printf("[payment][confirm] could not record quota failure payment_id=%s err=%v", fresh.ID, infoErr)
			}
		}
		return err
	}

	if err := c.host.LogAction(ctx, confirmed.OrderCode, actionPaymentConfirmed, map[string]any{"payment_id": confirmed.ID}); err != nil {
		log.Printf("[payment][confirm] audit log failed payment_id=%s err=%v", confirmed.ID, err)
	}
	log.Printf("[payment][confirm] confirmed payment_id=%s order=%s", confirmed.ID, confirmed.OrderCode)
	return nil
}

// Fail transitions the payment to Failed. Already Failed is an idempotent
// success; a Confirmed payment is absorbing and stays Confirmed.
func (c *PaymentConfirmer) Fail(ctx context.Context, payment entities.Payment, ev entities.NotificationEvent, reason string) error {
	if payment.State == entities.PaymentStateFailed {
		log.Printf("[payment][fail] already failed payment_id=%s", payment.ID)
		return nil
	}
	if payment.State == entities.PaymentStateConfirmed {
		log.Printf("[payment][fail] ignoring failure for confirmed payment payment_id=%s", payment.ID)
		return nil
	}
	if reason == "" {
		reason = "payment not completed"
	}

	payment.MergeInfo(map[string]any{
		"payment_status":     "failed",
		"failure_reason":     reason,
		"failed_at":          c.now().UTC().Format(time.RFC3339),
		"status_label":       descriptiveStatus("failed"),
		"webhook_received":   true,
		"webhook_event_type": ev.EventType,
	})
	if ev.CheckoutID != "" {
		payment.SetInfo("checkout_id", ev.CheckoutID)
	}
	if ev.ExternalPaymentID != "" {
		payment.SetInfo("payment_id", ev.ExternalPaymentID)
	}

	failed, err := c.host.FailPayment(ctx, payment, true)
	if err != nil {
		return err
	}
	if err := c.host.LogAction(ctx, failed.OrderCode, actionPaymentFailed, map[string]any{"payment_id": failed.ID, "reason": reason}); err != nil {
		log.Printf("[payment][fail] audit log failed payment_id=%s err=%v", failed.ID, err)
	}
	log.Printf("[payment][fail] marked failed payment_id=%s order=%s reason=%q", failed.ID, failed.OrderCode, reason)
	return nil
}

// enrichment builds the metadata merged into a payment on confirmation.
// Re-applying the same confirmation event is idempotent: the fields derive
// from the event, not from previous record contents.
func (c *PaymentConfirmer) enrichment(ev entities.NotificationEvent) map[string]any {
	fields := map[string]any{
		"confirmed_at":       c.now().UTC().Format(time.RFC3339),
		"status":             "succeeded",
		"status_label":       descriptiveStatus("succeeded"),
		"payment_status":     "completed",
		"webhook_received":   true,
		"webhook_event_type": ev.EventType,
	}
	if ev.CheckoutID != "" {
		fields["checkout_id"] = ev.CheckoutID
	}
	if ev.ExternalPaymentID != "" {
		fields["payment_id"] = ev.ExternalPaymentID
	}
	if ev.AmountCents > 0 {
		fields["amount_in_cents"] = ev.AmountCents
	}
	if ev.Currency != "" {
		fields["currency"] = ev.Currency
	}
	if ev.PaymentMethod != "" {
		fields["payment_method"] = ev.PaymentMethod
	}
	if ev.CardNetwork != "" {
		fields["card_network"] = ev.CardNetwork
	}
	if ev.CardLast4 != "" {
		fields["card_last4"] = ev.CardLast4
	}
	if ev.CreatedAt != "" {
		fields["created_at"] = ev.CreatedAt
		if formatted := formatGatewayDate(ev.CreatedAt); formatted != statusUnavailable {
			fields["created"] = formatted
		} else {
			fields["created"] = c.now().Format("02/01/2006 15:04")
		}
	}
	if receipt := digString(ev.Raw, "receipt_number"); receipt != "" {
		fields["receipt_number"] = receipt
	}
	if auth := digString(ev.Raw, "authorization_code"); auth != "" {
		fields["authorization_code"] = auth
	}
	return fields
}
