package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"
)

// WebhookOutcome classifies the result of processing one notification. The
// handler maps outcomes onto the HTTP acknowledgement that tells the gateway
// whether to retry.

type WebhookOutcome string

const (
	OutcomeConfirmed        WebhookOutcome = "confirmed"
	OutcomeAlreadyConfirmed WebhookOutcome = "already_confirmed"
	OutcomeMarkedFailed     WebhookOutcome = "marked_failed"
	OutcomeDuplicate        WebhookOutcome = "duplicate"
	OutcomeIgnored          WebhookOutcome = "ignored"
	OutcomeQuotaBlocked     WebhookOutcome = "quota_blocked"
	OutcomeNotConfirmable   WebhookOutcome = "not_confirmable"
	OutcomeContended        WebhookOutcome = "contended"
	OutcomeInvalidPayload   WebhookOutcome = "invalid_payload"
	OutcomeMissingData      WebhookOutcome = "missing_data"
	OutcomeBadSignature     WebhookOutcome = "bad_signature"
	OutcomeOrderNotFound    WebhookOutcome = "order_not_found"
	OutcomePaymentNotFound  WebhookOutcome = "payment_not_found"
)

// WebhookResult is what a reconciliation endpoint reports back to the handler.
type WebhookResult struct {
	Outcome   WebhookOutcome
	Message   string
	OrderCode string
	PaymentID string
}

// IWebhookUseCase exposes the two reconciliation entry points: tenant-scoped
// (routing already established the tenant) and global (the tenant must be
// derived from the notification's own metadata before anything else).

type IWebhookUseCase interface {
	ProcessTenant(ctx context.Context, organizer, event string, body []byte, headers http.Header) (WebhookResult, error)
	ProcessGlobal(ctx context.Context, body []byte, headers http.Header) (WebhookResult, error)
}

// WebhookUseCase runs the reconciliation pipeline: extract, suppress
// duplicates, verify signature, locate records, transition state.

type WebhookUseCase struct {
	deduper  *WebhookDeduper
	verifier *SignatureVerifier
	locator  *RecordLocator
	engine   *PaymentConfirmer
	settings interfaces.ISettingsRepository
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(deduper *WebhookDeduper, verifier *SignatureVerifier, locator *RecordLocator, engine *PaymentConfirmer, settings interfaces.ISettingsRepository) *WebhookUseCase {
	return &WebhookUseCase{
		deduper:  deduper,
		verifier: verifier,
		locator:  locator,
		engine:   engine,
		settings: settings,
	}
}

func (u *WebhookUseCase) ProcessTenant(ctx context.Context, organizer, event string, body []byte, headers http.Header) (WebhookResult, error) {
	log.Printf("[webhook][tenant] notification received organizer=%s event=%s", organizer, event)

	payload, ev, res, ok := u.parseAndExtract(body)
	if !ok {
		return res, nil
	}
	if ev.OrderCode == "" && ev.CheckoutID == "" {
		return WebhookResult{Outcome: OutcomeMissingData, Message: "missing order_code in webhook data"}, nil
	}
	return u.process(ctx, organizer, event, payload, ev, body, headers)
}

func (u *WebhookUseCase) ProcessGlobal(ctx context.Context, body []byte, headers http.Header) (WebhookResult, error) {
	log.Printf("[webhook][global] notification received")

	payload, ev, res, ok := u.parseAndExtract(body)
	if !ok {
		return res, nil
	}
	if ev.OrganizerSlug == "" || ev.EventSlug == "" || ev.OrderCode == "" {
		log.Printf("[webhook][global] insufficient metadata organizer=%q event=%q order=%q", ev.OrganizerSlug, ev.EventSlug, ev.OrderCode)
		return WebhookResult{Outcome: OutcomeMissingData, Message: "missing required data in webhook"}, nil
	}
	return u.process(ctx, ev.OrganizerSlug, ev.EventSlug, payload, ev, body, headers)
}

func (u *WebhookUseCase) parseAndExtract(body []byte) (map[string]any, entities.NotificationEvent, WebhookResult, bool) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[webhook] invalid payload err=%v", err)
		return nil, entities.NotificationEvent{}, WebhookResult{Outcome: OutcomeInvalidPayload, Message: "invalid webhook payload"}, false
	}

	ev := ExtractNotification(payload)
	log.Printf("[webhook] extracted event_type=%s status=%s order_code=%s payment_id=%s checkout_id=%s",
		ev.EventType, ev.Status, ev.OrderCode, ev.LocalPaymentID, ev.CheckoutID)
	return payload, ev, WebhookResult{}, true
}

func (u *WebhookUseCase) process(ctx context.Context, organizer, event string, payload map[string]any, ev entities.NotificationEvent, body []byte, headers http.Header) (WebhookResult, error) {
	if u.deduper.IsDuplicate(ctx, payload) {
		return WebhookResult{Outcome: OutcomeDuplicate, Message: "webhook already processed", OrderCode: ev.OrderCode}, nil
	}

	res, err := u.reconcile(ctx, organizer, event, ev, body, headers)
	if err != nil || res.Outcome == OutcomeContended {
		// These exits map to 5xx and the gateway will redeliver; the
		// fingerprint must not be left behind to answer that retry
		// "already processed".
		u.deduper.Forget(ctx, payload)
	}
	return res, err
}

func (u *WebhookUseCase) reconcile(ctx context.Context, organizer, event string, ev entities.NotificationEvent, body []byte, headers http.Header) (WebhookResult, error) {
	settings, err := u.resolveSettings(ctx, organizer, event)
	if err != nil {
		return WebhookResult{}, err
	}

	if err := u.verifier.Verify(settings.WebhookSecret, body, headers); err != nil {
		if errors.Is(err, ErrSignatureInvalid) {
			return WebhookResult{Outcome: OutcomeBadSignature, Message: "webhook signature verification failed"}, nil
		}
		return WebhookResult{}, err
	}

	order, err := u.locator.LocateOrder(ctx, organizer, event, ev)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoCorrelationID):
			return WebhookResult{Outcome: OutcomeMissingData, Message: "notification carries no correlation id"}, nil
		case errors.Is(err, ErrOrderNotFound):
			return WebhookResult{Outcome: OutcomeOrderNotFound, Message: fmt.Sprintf("order %s not found", ev.OrderCode), OrderCode: ev.OrderCode}, nil
		}
		return WebhookResult{}, err
	}

	switch ev.Kind {
	case entities.NotificationSucceeded:
		return u.handleSucceeded(ctx, settings, order, ev)
	case entities.NotificationFailed:
		return u.handleFailed(ctx, settings, order, ev)
	default:
		log.Printf("[webhook] event type not handled event_type=%s order=%s", ev.EventType, order.Code)
		return WebhookResult{Outcome: OutcomeIgnored, Message: fmt.Sprintf("event type %s not handled", ev.EventType), OrderCode: order.Code}, nil
	}
}

func (u *WebhookUseCase) handleSucceeded(ctx context.Context, settings entities.EventSettings, order entities.Order, ev entities.NotificationEvent) (WebhookResult, error) {
	payment, err := u.locator.LocatePayment(ctx, order, ev, !settings.DisableAnyStateFallback)
	if err != nil {
		if errors.Is(err, ErrNoApplicablePayment) {
			return WebhookResult{Outcome: OutcomePaymentNotFound, Message: fmt.Sprintf("no payment found for order %s", order.Code), OrderCode: order.Code}, nil
		}
		return WebhookResult{}, err
	}

	if payment.State == entities.PaymentStateConfirmed {
		return WebhookResult{Outcome: OutcomeAlreadyConfirmed, Message: "payment already confirmed", OrderCode: order.Code, PaymentID: payment.ID}, nil
	}

	err = u.engine.Confirm(ctx, payment, ev)
	switch {
	case err == nil:
		return WebhookResult{Outcome: OutcomeConfirmed, Message: "payment confirmed", OrderCode: order.Code, PaymentID: payment.ID}, nil
	case errors.Is(err, interfaces.ErrQuotaExceeded):
		// Retrying will not change stock: acknowledge and leave the payment
		// for manual review.
		return WebhookResult{Outcome: OutcomeQuotaBlocked, Message: "ticket quota exceeded, payment not confirmed", OrderCode: order.Code, PaymentID: payment.ID}, nil
	case errors.Is(err, ErrNotConfirmable):
		return WebhookResult{Outcome: OutcomeNotConfirmable, Message: "payment not in a confirmable state", OrderCode: order.Code, PaymentID: payment.ID}, nil
	case errors.Is(err, ErrConfirmContended):
		// Could not verify locally that the concurrent delivery finished;
		// let the gateway retry.
		return WebhookResult{Outcome: OutcomeContended, Message: "payment confirmation in progress", OrderCode: order.Code, PaymentID: payment.ID}, nil
	default:
		return WebhookResult{}, err
	}
}

func (u *WebhookUseCase) handleFailed(ctx context.Context, settings entities.EventSettings, order entities.Order, ev entities.NotificationEvent) (WebhookResult, error) {
	payment, err := u.locator.LocatePayment(ctx, order, ev, !settings.DisableAnyStateFallback)
	if err != nil {
		if errors.Is(err, ErrNoApplicablePayment) {
			return WebhookResult{Outcome: OutcomePaymentNotFound, Message: fmt.Sprintf("no pending payment found for order %s", order.Code), OrderCode: order.Code}, nil
		}
		return WebhookResult{}, err
	}

	if err := u.engine.Fail(ctx, payment, ev, ev.FailureReason); err != nil {
		return WebhookResult{}, err
	}
	return WebhookResult{Outcome: OutcomeMarkedFailed, Message: "payment marked as failed", OrderCode: order.Code, PaymentID: payment.ID}, nil
}

// resolveSettings falls back from event-level to organizer-level
// configuration; a tenant without any settings record still gets its
// notifications processed (permissive default, see SignatureVerifier).
func (u *WebhookUseCase) resolveSettings(ctx context.Context, organizer, event string) (entities.EventSettings, error) {
	s, err := u.settings.GetEventSettings(ctx, organizer, event)
	if err != nil {
		return entities.EventSettings{}, err
	}
	if s.Organizer != "" && s.WebhookSecret != "" {
		return s, nil
	}

	org, err := u.settings.GetOrganizerSettings(ctx, organizer)
	if err != nil {
		return entities.EventSettings{}, err
	}
	if org.Organizer != "" {
		if s.Organizer == "" {
			return org, nil
		}
		if s.WebhookSecret == "" && org.WebhookSecret != "" {
			log.Printf("[webhook][settings] using organizer-level webhook secret organizer=%s event=%s", organizer, event)
			s.WebhookSecret = org.WebhookSecret
		}
	}
	return s, nil
}
