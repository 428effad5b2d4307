package entities

// NotificationKind is the normalized outcome carried by a gateway webhook.

type NotificationKind string

const (
	NotificationSucceeded    NotificationKind = "succeeded"
	NotificationFailed       NotificationKind = "failed"
	NotificationRefunded     NotificationKind = "refunded"
	NotificationUnrecognized NotificationKind = "unrecognized"
)

// NotificationEvent is the normalized view of a raw Recurrente webhook
// payload. It lives only for the duration of one inbound request; the only
// thing persisted about it is the duplicate-suppression fingerprint.
//
// Every field is best-effort: absent data stays at the zero value, never an
// error. Raw keeps the full payload for audit trails.

type NotificationEvent struct {
	EventType string           `json:"event_type"`
	Kind      NotificationKind `json:"kind"`

	// External correlation ids assigned by the gateway.
	CheckoutID        string `json:"checkout_id"`
	ExternalPaymentID string `json:"external_payment_id"`

	// Correlation metadata echoed back from checkout creation.
	OrderCode      string `json:"order_code"`
	LocalPaymentID string `json:"local_payment_id"`
	OrganizerSlug  string `json:"organizer_slug"`
	EventSlug      string `json:"event_slug"`

	// Gateway-reported detail.
	Status        string `json:"status"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	CardNetwork   string `json:"card_network"`
	CardLast4     string `json:"card_last4"`
	CreatedAt     string `json:"created_at"`
	FailureReason string `json:"failure_reason"`

	Raw map[string]any `json:"-"`
}

// Actionable reports whether the event maps to a state transition at all.
func (e NotificationEvent) Actionable() bool {
	return e.Kind == NotificationSucceeded || e.Kind == NotificationFailed
}
