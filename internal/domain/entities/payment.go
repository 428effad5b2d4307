package entities

import "time"

// PaymentState represents the lifecycle of a payment attempt.
//
// Progression is one-way: Created/Pending may move to Confirmed, Failed or
// Canceled. Confirmed and Failed are absorbing; once reached, no webhook or
// manual refresh may move the payment out of them.

type PaymentState string

const (
	PaymentStateCreated   PaymentState = "created"
	PaymentStatePending   PaymentState = "pending"
	PaymentStateConfirmed PaymentState = "confirmed"
	PaymentStateFailed    PaymentState = "failed"
	PaymentStateCanceled  PaymentState = "canceled"
)

// ProviderRecurrente is the provider tag stored on payments created by this service.
const ProviderRecurrente = "recurrente"

// Payment is the payment record persisted by the service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_code-index): order_code
//
// Info is a free-form metadata map used to stash gateway correlation ids
// (checkout_id, payment_id), receipt numbers, authorization codes, card
// brand/last4, timestamps and human-readable status text. Amounts are integer
// minor units (cents); no floating currency math happens on this entity.

type Payment struct {
	ID          string         `json:"id"`
	OrderCode   string         `json:"order_code"`
	Organizer   string         `json:"organizer"`
	Event       string         `json:"event"`
	Provider    string         `json:"provider"`
	State       PaymentState   `json:"state"`
	AmountCents int64          `json:"amount_cents"`
	Currency    string         `json:"currency"`
	Info        map[string]any `json:"info,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// IsTerminal reports whether the payment is in an absorbing state.
func (p Payment) IsTerminal() bool {
	return p.State == PaymentStateConfirmed || p.State == PaymentStateFailed
}

// IsConfirmable reports whether the one-way state machine allows a transition
// to Confirmed from the current state.
func (p Payment) IsConfirmable() bool {
	return p.State == PaymentStatePending || p.State == PaymentStateCreated
}

// InfoString returns a string field from the metadata map, or "" when absent
// or not a string.
func (p Payment) InfoString(key string) string {
	if p.Info == nil {
		return ""
	}
	s, _ := p.Info[key].(string)
	return s
}

// SetInfo writes a metadata field, allocating the map on first use.
func (p *Payment) SetInfo(key string, value any) {
	if p.Info == nil {
		p.Info = map[string]any{}
	}
	p.Info[key] = value
}

// MergeInfo copies the given fields into the metadata map without discarding
// previously stored fields.
func (p *Payment) MergeInfo(fields map[string]any) {
	for k, v := range fields {
		p.SetInfo(k, v)
	}
}
