package request

// PutSettingsRequest configures Recurrente for an organizer or a single
// event. The tenant comes from the path, never from the body.
type PutSettingsRequest struct {
	APIKey                  string `json:"api_key"`
	APISecret               string `json:"api_secret"`
	WebhookSecret           string `json:"webhook_secret"`
	TestMode                bool   `json:"test_mode"`
	ProductionAPIURL        string `json:"production_api_url"`
	SandboxAPIURL           string `json:"sandbox_api_url"`
	PaymentDescription      string `json:"payment_description"`
	DisableAnyStateFallback bool   `json:"disable_any_state_fallback"`
}
