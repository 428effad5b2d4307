package usecase

import (
	"ticketing_recurrente/internal/domain/entities"

	"github.com/spf13/cast"
)

// metadataProbes are the candidate paths for the correlation metadata block,
// in priority order. The gateway moves it around depending on event kind and
// API version; the first dict found wins.
var metadataProbes = [][]string{
	{"checkout", "metadata"},
	{"metadata"},
	{"payment", "metadata"},
	{"data", "metadata"},
}

// succeededEventTypes and failedEventTypes map event kinds deterministically
// to a normalized outcome; the embedded checkout status is only consulted
// when the event kind is not in either table.
var succeededEventTypes = map[string]bool{
	"payment_intent.succeeded": true,
	"checkout.completed":       true,
}

var failedEventTypes = map[string]bool{
	"payment.failed":                true,
	"checkout.expired":              true,
	"payment_intent.payment_failed": true,
}

// ExtractNotification parses an arbitrary, loosely structured webhook payload
// into a normalized NotificationEvent. It is pure: no I/O, no side effects,
// and absent fields stay at their zero value instead of producing an error.
func ExtractNotification(payload map[string]any) entities.NotificationEvent {
	ev := entities.NotificationEvent{Raw: payload}
	if payload == nil {
		ev.Kind = entities.NotificationUnrecognized
		return ev
	}

	ev.EventType = digString(payload, "event_type")
	if ev.EventType == "" {
		ev.EventType = digString(payload, "type")
	}

	// External payment id: top-level id, then payment.id, then the id of the
	// payment nested inside the checkout.
	ev.ExternalPaymentID = digString(payload, "id")
	if ev.ExternalPaymentID == "" {
		ev.ExternalPaymentID = digString(payload, "payment", "id")
	}
	if ev.ExternalPaymentID == "" {
		ev.ExternalPaymentID = digString(payload, "checkout", "payment", "id")
	}

	ev.CheckoutID = digString(payload, "checkout", "id")
	if ev.CheckoutID == "" {
		ev.CheckoutID = digString(payload, "data", "id")
	}

	ev.AmountCents = cast.ToInt64(dig(payload, "amount_in_cents"))
	ev.Currency = digString(payload, "currency")
	ev.CreatedAt = digString(payload, "created_at")
	if ev.CreatedAt == "" {
		ev.CreatedAt = digString(payload, "checkout", "created_at")
	}

	ev.FailureReason = digString(payload, "failure_reason")
	if ev.FailureReason == "" {
		ev.FailureReason = digString(payload, "checkout", "failure_reason")
	}

	// Payment-method/card detail, first match wins.
	for _, path := range [][]string{{"checkout", "payment_method"}, {"payment", "payment_method"}, {"payment_method"}} {
		pm, ok := digMap(payload, path...)
		if !ok {
			continue
		}
		ev.PaymentMethod = cast.ToString(pm["type"])
		if card, ok := pm["card"].(map[string]any); ok {
			ev.CardLast4 = cast.ToString(card["last4"])
			ev.CardNetwork = cast.ToString(card["network"])
		}
		break
	}

	// Correlation metadata.
	for _, path := range metadataProbes {
		meta, ok := digMap(payload, path...)
		if !ok {
			continue
		}
		ev.OrderCode = cast.ToString(meta["order_code"])
		ev.LocalPaymentID = cast.ToString(meta["payment_id"])
		ev.EventSlug = cast.ToString(meta["event_slug"])
		ev.OrganizerSlug = cast.ToString(meta["organizer_slug"])
		break
	}

	// Normalized status: the event-kind table wins, then the embedded
	// checkout status, then unset (caller treats as not actionable).
	switch {
	case succeededEventTypes[ev.EventType]:
		ev.Status = "succeeded"
		ev.Kind = entities.NotificationSucceeded
	case failedEventTypes[ev.EventType]:
		ev.Status = "failed"
		ev.Kind = entities.NotificationFailed
	case ev.EventType == "charge.refunded":
		ev.Status = "refunded"
		ev.Kind = entities.NotificationRefunded
	default:
		ev.Status = digString(payload, "checkout", "status")
		switch ev.Status {
		case "paid":
			ev.Kind = entities.NotificationSucceeded
		case "failed", "expired":
			ev.Kind = entities.NotificationFailed
		default:
			ev.Kind = entities.NotificationUnrecognized
		}
	}

	return ev
}

// dig walks nested maps along path and returns the value found, or nil.
func dig(payload map[string]any, path ...string) any {
	var current any = payload
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

func digMap(payload map[string]any, path ...string) (map[string]any, bool) {
	m, ok := dig(payload, path...).(map[string]any)
	return m, ok && m != nil
}

func digString(payload map[string]any, path ...string) string {
	v := dig(payload, path...)
	if v == nil {
		return ""
	}
	if _, isMap := v.(map[string]any); isMap {
		return ""
	}
	return cast.ToString(v)
}
