package entities

// EventSettings is the per-tenant Recurrente configuration.
//
// Storage model (DynamoDB):
//   - PK: scope ("<organizer>/<event>" for event-level, "<organizer>" for
//     organizer-level fallback records)
//
// WebhookSecret may be empty: the webhook endpoints then process notifications
// with a logged warning instead of rejecting them, because the gateway only
// supports a single global webhook URL and dropping notifications during
// misconfiguration would strand paid orders.

type EventSettings struct {
	Organizer string `json:"organizer"`
	Event     string `json:"event"`

	APIKey        string `json:"api_key"`
	APISecret     string `json:"api_secret"`
	WebhookSecret string `json:"webhook_secret"`

	TestMode         bool   `json:"test_mode"`
	ProductionAPIURL string `json:"production_api_url"`
	SandboxAPIURL    string `json:"sandbox_api_url"`

	PaymentDescription string `json:"payment_description"`

	// DisableAnyStateFallback opts out of the locator's last-resort match
	// against the latest payment regardless of state.
	DisableAnyStateFallback bool `json:"disable_any_state_fallback"`
}

// BaseURL returns the API base for the configured mode, with defaults
// matching the gateway's hosted endpoints.
func (s EventSettings) BaseURL() string {
	if s.TestMode {
		if s.SandboxAPIURL != "" {
			return s.SandboxAPIURL
		}
		return "https://app.recurrente.com/api"
	}
	if s.ProductionAPIURL != "" {
		return s.ProductionAPIURL
	}
	return "https://app.recurrente.com/api"
}
