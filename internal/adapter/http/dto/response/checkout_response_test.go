package response

import (
	"testing"
	"time"

	"ticketing_recurrente/internal/domain/entities"
)

func TestFromPayment(t *testing.T) {
	now := time.Now().UTC()
	p := entities.Payment{
		ID:          "p1",
		OrderCode:   "ABC12",
		State:       entities.PaymentStateConfirmed,
		AmountCents: 12550,
		Currency:    "GTQ",
		CreatedAt:   now,
		Info: map[string]any{
			"status":       "paid",
			"status_label": "Payment completed",
			"checkout_url": "https://pay/ch_1",
		},
	}

	res := FromPayment(p)
	if res.PaymentID != "p1" || res.OrderCode != "ABC12" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.State != "confirmed" || res.Status != "paid" {
		t.Fatalf("unexpected states: %+v", res)
	}
	if res.Amount != "125.50" || res.Currency != "GTQ" {
		t.Fatalf("unexpected amount: %+v", res)
	}
	if res.CheckoutURL != "https://pay/ch_1" || !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected fields: %+v", res)
	}
}

func TestFormatMinorUnits(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{12550, "125.50"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := formatMinorUnits(tc.cents); got != tc.want {
			t.Fatalf("formatMinorUnits(%d): expected %s, got %s", tc.cents, tc.want, got)
		}
	}
}
