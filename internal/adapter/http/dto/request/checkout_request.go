package request

import "strings"

// CreateCheckoutRequest starts a hosted checkout for an existing order.
type CreateCheckoutRequest struct {
	OrderCode  string `json:"order_code" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required"`
	CancelURL  string `json:"cancel_url" binding:"required"`
	WebhookURL string `json:"webhook_url"`
}

func (r CreateCheckoutRequest) ResolveOrderCode() string {
	return strings.ToUpper(strings.TrimSpace(r.OrderCode))
}

// PaymentStatusRequest identifies the payment a status operation refers to.
// Either payment_id or order_code plus order_secret must be set.
type PaymentStatusRequest struct {
	OrderCode   string `json:"order_code"`
	OrderSecret string `json:"order_secret"`
	PaymentID   string `json:"payment_id"`
}

func (r PaymentStatusRequest) ResolveOrderCode() string {
	return strings.ToUpper(strings.TrimSpace(r.OrderCode))
}

func (r PaymentStatusRequest) HasReference() bool {
	if strings.TrimSpace(r.PaymentID) != "" {
		return true
	}
	return r.ResolveOrderCode() != "" && strings.TrimSpace(r.OrderSecret) != ""
}

// RefundRequest asks for a refund of a confirmed payment. A zero amount
// refunds the full payment.
type RefundRequest struct {
	PaymentID   string `json:"payment_id" binding:"required"`
	AmountCents int64  `json:"amount_cents"`
}
