package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var (
	ErrGatewayNotConfigured = errors.New("recurrente is not configured for this event")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrOrderSecretMismatch  = errors.New("order secret does not match")
	ErrPaymentNotRefundable = errors.New("payment is not refundable")
)

// ReturnURLs are the host-provided redirect targets wired into a checkout.
type ReturnURLs struct {
	Success string
	Cancel  string
	Webhook string
}

// CheckoutStart is the result of creating a remote checkout session.
type CheckoutStart struct {
	PaymentID   string `json:"payment_id"`
	CheckoutID  string `json:"checkout_id"`
	CheckoutURL string `json:"checkout_url"`
}

// ICheckoutUseCase covers the outbound half of the integration: creating
// checkout sessions, manually refreshing payment status against the gateway
// and issuing refunds.

type ICheckoutUseCase interface {
	CreateCheckout(ctx context.Context, organizer, event, orderCode string, urls ReturnURLs) (CheckoutStart, error)
	UpdatePaymentStatus(ctx context.Context, organizer, event, orderCode, secret, paymentID string) (entities.Payment, error)
	GetPaymentStatus(ctx context.Context, organizer, event, orderCode, secret string) (entities.Payment, error)
	Refund(ctx context.Context, organizer, event, paymentID string, amountCents int64) (entities.Payment, error)
}

type CheckoutUseCase struct {
	orders   interfaces.IOrderRepository
	payments interfaces.IPaymentRepository
	settings interfaces.ISettingsRepository
	gateway  interfaces.ICheckoutGateway
	engine   *PaymentConfirmer
	host     interfaces.IOrderService
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(orders interfaces.IOrderRepository, payments interfaces.IPaymentRepository, settings interfaces.ISettingsRepository, gateway interfaces.ICheckoutGateway, engine *PaymentConfirmer, host interfaces.IOrderService) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, payments: payments, settings: settings, gateway: gateway, engine: engine, host: host}
}

// CreateCheckout creates a pending payment record and a remote checkout
// session for it. The session metadata carries every correlation key the
// webhook reconciliation relies on later.
func (u *CheckoutUseCase) CreateCheckout(ctx context.Context, organizer, event, orderCode string, urls ReturnURLs) (CheckoutStart, error) {
	log.Printf("[checkout][usecase] create start organizer=%s event=%s order=%s", organizer, event, orderCode)

	settings, err := u.settings.GetEventSettings(ctx, organizer, event)
	if err != nil {
		return CheckoutStart{}, err
	}
	if settings.Organizer == "" || settings.APIKey == "" || settings.APISecret == "" {
		return CheckoutStart{}, ErrGatewayNotConfigured
	}

	order, err := u.orders.GetByCode(ctx, organizer, event, orderCode)
	if err != nil {
		return CheckoutStart{}, err
	}
	if order.Code == "" {
		return CheckoutStart{}, fmt.Errorf("%w: code=%s", ErrOrderNotFound, orderCode)
	}

	payment := entities.Payment{
		ID:          uuid.NewString(),
		OrderCode:   order.Code,
		Organizer:   organizer,
		Event:       event,
		Provider:    entities.ProviderRecurrente,
		State:       entities.PaymentStatePending,
		AmountCents: order.TotalCents,
		Currency:    order.Currency,
		CreatedAt:   time.Now().UTC(),
	}

	// Prefill the gateway-side user so the checkout form arrives populated.
	// Best effort: a failure here only loses the prefill.
	userID := ""
	if order.Email != "" {
		userID, err = u.gateway.UpsertUser(ctx, settings, order.Email, customerNameFromEmail(order.Email))
		if err != nil {
			log.Printf("[checkout][usecase] user upsert failed, continuing without prefill order=%s err=%v", order.Code, err)
			userID = ""
		}
	}

	description := settings.PaymentDescription
	if description == "" {
		description = fmt.Sprintf("Ticket payment for %s", event)
	}

	req := entities.CheckoutRequest{
		Items: []entities.CheckoutItem{{
			Name:        fmt.Sprintf("Tickets - %s", event),
			Description: fmt.Sprintf("%s - Order #%s", description, order.Code),
			Quantity:    1,
			AmountCents: payment.AmountCents,
			Currency:    payment.Currency,
		}},
		SuccessURL:  urls.Success,
		CancelURL:   urls.Cancel,
		WebhookURL:  urls.Webhook,
		Customer:    entities.CheckoutCustomer{Email: order.Email, FullName: customerNameFromEmail(order.Email)},
		UserID:      userID,
		Description: description,
		Metadata: map[string]string{
			"order_code":     order.Code,
			"payment_id":     payment.ID,
			"event_slug":     event,
			"organizer_slug": organizer,
		},
	}

	session, err := u.gateway.CreateCheckout(ctx, settings, req)
	if err != nil {
		return CheckoutStart{}, err
	}

	payment.MergeInfo(map[string]any{
		"checkout_id":  session.ID,
		"checkout_url": session.CheckoutURL,
		"status":       session.Status,
		"created_at":   session.CreatedAt,
		"expires_at":   session.ExpiresAt,
		"status_label": descriptiveStatus(session.Status),
	})
	if _, err := u.payments.Create(ctx, payment); err != nil {
		return CheckoutStart{}, err
	}

	if err := u.host.LogAction(ctx, order.Code, "recurrente.checkout.created", map[string]any{"payment_id": payment.ID, "checkout_id": session.ID}); err != nil {
		log.Printf("[checkout][usecase] audit log failed order=%s err=%v", order.Code, err)
	}

	log.Printf("[checkout][usecase] create success order=%s payment_id=%s checkout_id=%s", order.Code, payment.ID, session.ID)
	return CheckoutStart{PaymentID: payment.ID, CheckoutID: session.ID, CheckoutURL: session.CheckoutURL}, nil
}

// UpdatePaymentStatus polls the gateway for the payment's checkout and
// reconciles the local record: paid confirms through the engine, failed or
// expired marks the payment failed. Webhooks remain the primary path; this
// exists for customers whose notification was delayed or lost.
func (u *CheckoutUseCase) UpdatePaymentStatus(ctx context.Context, organizer, event, orderCode, secret, paymentID string) (entities.Payment, error) {
	payment, err := u.resolvePayment(ctx, organizer, event, orderCode, secret, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if payment.State == entities.PaymentStateConfirmed {
		return payment, nil
	}

	checkoutID := payment.InfoString("checkout_id")
	if checkoutID == "" {
		log.Printf("[checkout][status] payment has no checkout_id, nothing to poll payment_id=%s", payment.ID)
		return payment, nil
	}

	settings, err := u.settings.GetEventSettings(ctx, organizer, event)
	if err != nil {
		return entities.Payment{}, err
	}
	if settings.Organizer == "" {
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	checkout, err := u.gateway.GetCheckout(ctx, settings, checkoutID)
	if err != nil {
		return entities.Payment{}, err
	}

	status := cast.ToString(checkout["status"])
	payment.MergeInfo(map[string]any{
		"status":       status,
		"status_label": descriptiveStatus(status),
		"last_updated": time.Now().UTC().Format(time.RFC3339),
	})
	if expires := cast.ToString(checkout["expires_at"]); expires != "" {
		payment.SetInfo("expires_at", expires)
	}
	if _, err := u.payments.UpdateInfo(ctx, payment.ID, payment.Info); err != nil {
		return entities.Payment{}, err
	}

	// Reuse the extractor by wrapping the checkout object the way a webhook
	// would carry it; the engine then applies the same transition rules.
	ev := ExtractNotification(map[string]any{"checkout": checkout})
	switch status {
	case "paid":
		if err := u.engine.Confirm(ctx, payment, ev); err != nil && !errors.Is(err, ErrConfirmContended) {
			return entities.Payment{}, err
		}
	case "failed", "expired":
		if err := u.engine.Fail(ctx, payment, ev, cast.ToString(checkout["failure_reason"])); err != nil {
			return entities.Payment{}, err
		}
	}

	fresh, err := u.payments.GetByID(ctx, payment.ID)
	if err != nil {
		return entities.Payment{}, err
	}
	if fresh.ID == "" {
		return payment, nil
	}
	return fresh, nil
}

// GetPaymentStatus returns the freshest local view of the order's relevant
// payment without calling the gateway.
func (u *CheckoutUseCase) GetPaymentStatus(ctx context.Context, organizer, event, orderCode, secret string) (entities.Payment, error) {
	return u.resolvePayment(ctx, organizer, event, orderCode, secret, "")
}

// Refund requests a refund of a confirmed payment at the gateway.
// amountCents of zero refunds the full amount.
func (u *CheckoutUseCase) Refund(ctx context.Context, organizer, event, paymentID string, amountCents int64) (entities.Payment, error) {
	payment, err := u.payments.GetByID(ctx, paymentID)
	if err != nil {
		return entities.Payment{}, err
	}
	if payment.ID == "" || payment.Organizer != organizer || payment.Event != event {
		return entities.Payment{}, fmt.Errorf("%w: id=%s", ErrPaymentNotFound, paymentID)
	}
	if payment.State != entities.PaymentStateConfirmed {
		return entities.Payment{}, fmt.Errorf("%w: state=%s", ErrPaymentNotRefundable, payment.State)
	}

	externalID := payment.InfoString("payment_id")
	if externalID == "" {
		return entities.Payment{}, fmt.Errorf("%w: no gateway payment id stored", ErrPaymentNotRefundable)
	}

	settings, err := u.settings.GetEventSettings(ctx, organizer, event)
	if err != nil {
		return entities.Payment{}, err
	}
	if settings.Organizer == "" {
		return entities.Payment{}, ErrGatewayNotConfigured
	}

	if amountCents <= 0 || amountCents > payment.AmountCents {
		amountCents = payment.AmountCents
	}

	resp, err := u.gateway.RefundPayment(ctx, settings, externalID, amountCents)
	if err != nil {
		return entities.Payment{}, err
	}

	payment.MergeInfo(map[string]any{
		"refund_id":           cast.ToString(resp["id"]),
		"refund_status":       cast.ToString(resp["status"]),
		"refund_amount_cents": amountCents,
		"refund_requested_at": time.Now().UTC().Format(time.RFC3339),
	})
	updated, err := u.payments.UpdateInfo(ctx, payment.ID, payment.Info)
	if err != nil {
		return entities.Payment{}, err
	}

	if err := u.host.LogAction(ctx, payment.OrderCode, "recurrente.payment.refund_requested", map[string]any{"payment_id": payment.ID, "amount_cents": amountCents}); err != nil {
		log.Printf("[checkout][refund] audit log failed payment_id=%s err=%v", payment.ID, err)
	}
	return updated, nil
}

// resolvePayment finds the payment a customer-facing status request refers
// to: directly by payment id, or the most relevant payment of a secret-
// verified order (confirmed first, then pending, then latest).
func (u *CheckoutUseCase) resolvePayment(ctx context.Context, organizer, event, orderCode, secret, paymentID string) (entities.Payment, error) {
	if paymentID != "" {
		p, err := u.payments.GetByID(ctx, paymentID)
		if err != nil {
			return entities.Payment{}, err
		}
		if p.ID == "" || p.Organizer != organizer || p.Event != event || p.Provider != entities.ProviderRecurrente {
			return entities.Payment{}, fmt.Errorf("%w: id=%s", ErrPaymentNotFound, paymentID)
		}
		return p, nil
	}

	order, err := u.orders.GetByCode(ctx, organizer, event, orderCode)
	if err != nil {
		return entities.Payment{}, err
	}
	if order.Code == "" {
		return entities.Payment{}, fmt.Errorf("%w: code=%s", ErrOrderNotFound, orderCode)
	}
	if order.Secret != secret {
		return entities.Payment{}, ErrOrderSecretMismatch
	}

	candidates, err := u.payments.ListByOrderCode(ctx, order.Code)
	if err != nil {
		return entities.Payment{}, err
	}

	var latest, pending, confirmed *entities.Payment
	for i := range candidates {
		p := &candidates[i]
		if p.Provider != entities.ProviderRecurrente {
			continue
		}
		if latest == nil {
			latest = p
		}
		if confirmed == nil && p.State == entities.PaymentStateConfirmed {
			confirmed = p
		}
		if pending == nil && p.State == entities.PaymentStatePending {
			pending = p
		}
	}
	switch {
	case confirmed != nil:
		return *confirmed, nil
	case pending != nil:
		return *pending, nil
	case latest != nil:
		return *latest, nil
	}
	return entities.Payment{}, fmt.Errorf("%w: order=%s", ErrPaymentNotFound, orderCode)
}

// customerNameFromEmail derives a display name from the address local part
// when the order carries no explicit name.
func customerNameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "Customer"
	}
	words := strings.Fields(strings.ReplaceAll(email[:at], ".", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "Customer"
	}
	return strings.Join(words, " ")
}
