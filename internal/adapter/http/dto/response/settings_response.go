package response

import (
	"strings"

	"ticketing_recurrente/internal/domain/entities"
)

// SettingsResponse echoes tenant configuration with secrets masked.
type SettingsResponse struct {
	Organizer               string `json:"organizer"`
	Event                   string `json:"event,omitempty"`
	APIKey                  string `json:"api_key,omitempty"`
	APISecret               string `json:"api_secret,omitempty"`
	WebhookSecret           string `json:"webhook_secret,omitempty"`
	TestMode                bool   `json:"test_mode"`
	PaymentDescription      string `json:"payment_description,omitempty"`
	DisableAnyStateFallback bool   `json:"disable_any_state_fallback"`
}

func FromEventSettings(s entities.EventSettings) SettingsResponse {
	return SettingsResponse{
		Organizer:               s.Organizer,
		Event:                   s.Event,
		APIKey:                  s.APIKey,
		APISecret:               maskSecret(s.APISecret),
		WebhookSecret:           maskSecret(s.WebhookSecret),
		TestMode:                s.TestMode,
		PaymentDescription:      s.PaymentDescription,
		DisableAnyStateFallback: s.DisableAnyStateFallback,
	}
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
