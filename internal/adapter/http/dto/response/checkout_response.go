package response

import (
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase"

	"github.com/shopspring/decimal"
)

type CheckoutResponse struct {
	PaymentID   string `json:"payment_id"`
	CheckoutID  string `json:"checkout_id"`
	CheckoutURL string `json:"checkout_url"`
}

func FromCheckoutStart(s usecase.CheckoutStart) CheckoutResponse {
	return CheckoutResponse{
		PaymentID:   s.PaymentID,
		CheckoutID:  s.CheckoutID,
		CheckoutURL: s.CheckoutURL,
	}
}

// PaymentStatusResponse is the customer-facing view of a payment.
type PaymentStatusResponse struct {
	PaymentID   string    `json:"payment_id"`
	OrderCode   string    `json:"order_code"`
	State       string    `json:"state"`
	Status      string    `json:"status,omitempty"`
	StatusLabel string    `json:"status_label,omitempty"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	CheckoutURL string    `json:"checkout_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentStatusResponse {
	return PaymentStatusResponse{
		PaymentID:   p.ID,
		OrderCode:   p.OrderCode,
		State:       string(p.State),
		Status:      p.InfoString("status"),
		StatusLabel: p.InfoString("status_label"),
		Amount:      formatMinorUnits(p.AmountCents),
		Currency:    p.Currency,
		CheckoutURL: p.InfoString("checkout_url"),
		CreatedAt:   p.CreatedAt,
	}
}

// formatMinorUnits renders cents as a fixed two-decimal amount, e.g. 12550
// becomes "125.50".
func formatMinorUnits(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
