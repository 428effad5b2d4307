package response

import "ticketing_recurrente/internal/usecase"

// WebhookResponse is the acknowledgment body returned to the gateway.
type WebhookResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	OrderCode string `json:"order_code,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

func FromWebhookResult(r usecase.WebhookResult) WebhookResponse {
	return WebhookResponse{
		Status:    string(r.Outcome),
		Message:   r.Message,
		OrderCode: r.OrderCode,
		PaymentID: r.PaymentID,
	}
}
