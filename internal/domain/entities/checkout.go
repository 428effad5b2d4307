package entities

// Gateway-facing checkout types. These mirror the Recurrente REST API shapes
// and are built by the checkout use case, never by handlers.

type CheckoutCustomer struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type CheckoutItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	AmountCents int64  `json:"amount_in_cents"`
	Currency    string `json:"currency"`
}

// CheckoutRequest is the outbound checkout-creation payload. Metadata carries
// the correlation keys (order_code, payment_id, event_slug, organizer_slug)
// the gateway echoes back on every webhook.
type CheckoutRequest struct {
	Items       []CheckoutItem    `json:"items"`
	SuccessURL  string            `json:"success_url"`
	CancelURL   string            `json:"cancel_url"`
	WebhookURL  string            `json:"webhook_url"`
	Customer    CheckoutCustomer  `json:"customer"`
	UserID      string            `json:"user_id,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata"`
}

// CheckoutSession is the gateway's view of a created checkout.
type CheckoutSession struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	ExpiresAt   string `json:"expires_at"`
}
