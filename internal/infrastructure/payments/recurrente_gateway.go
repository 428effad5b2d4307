package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"

	"github.com/spf13/cast"
)

var ErrRecurrenteRequestFailed = errors.New("recurrente request failed")

const requestTimeout = 10 * time.Second

// RecurrenteGateway talks to the Recurrente REST API. Credentials are
// per-event, so every call takes the event settings instead of the gateway
// holding a single key pair.
type RecurrenteGateway struct {
	httpClient *http.Client
}

var _ interfaces.ICheckoutGateway = (*RecurrenteGateway)(nil)

func NewRecurrenteGateway() *RecurrenteGateway {
	return &RecurrenteGateway{httpClient: &http.Client{Timeout: requestTimeout}}
}

// UpsertUser creates (or reuses) the gateway-side user for an email so the
// hosted checkout form arrives prefilled. Returns the remote user id.
func (g *RecurrenteGateway) UpsertUser(ctx context.Context, settings entities.EventSettings, email, fullName string) (string, error) {
	log.Printf("[gateway][recurrente] upsert user start email=%s", email)

	payload := map[string]any{"email": email, "full_name": fullName}
	resp, err := g.do(ctx, settings, http.MethodPost, "/users", payload)
	if err != nil {
		return "", err
	}

	id := cast.ToString(resp["id"])
	if id == "" {
		// The API reports an already-registered email as an error body that
		// still carries the existing user id.
		id = cast.ToString(dig(resp, "user", "id"))
	}
	if id == "" {
		return "", fmt.Errorf("%w: user response carried no id", ErrRecurrenteRequestFailed)
	}
	log.Printf("[gateway][recurrente] upsert user success user_id=%s", id)
	return id, nil
}

// CreateCheckout creates a hosted checkout session.
func (g *RecurrenteGateway) CreateCheckout(ctx context.Context, settings entities.EventSettings, req entities.CheckoutRequest) (entities.CheckoutSession, error) {
	log.Printf("[gateway][recurrente] create checkout start items=%d", len(req.Items))

	items := make([]map[string]any, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, map[string]any{
			"name":            item.Name,
			"description":     item.Description,
			"quantity":        item.Quantity,
			"amount_in_cents": item.AmountCents,
			"currency":        strings.ToUpper(item.Currency),
		})
	}
	payload := map[string]any{
		"items":       items,
		"success_url": req.SuccessURL,
		"cancel_url":  req.CancelURL,
		"metadata":    req.Metadata,
	}
	if req.UserID != "" {
		payload["user_id"] = req.UserID
	}
	if req.WebhookURL != "" {
		payload["webhook_url"] = req.WebhookURL
	}

	resp, err := g.do(ctx, settings, http.MethodPost, "/checkouts", payload)
	if err != nil {
		return entities.CheckoutSession{}, err
	}

	session := entities.CheckoutSession{
		ID:          cast.ToString(resp["id"]),
		CheckoutURL: cast.ToString(resp["checkout_url"]),
		Status:      cast.ToString(resp["status"]),
		CreatedAt:   cast.ToString(resp["created_at"]),
		ExpiresAt:   cast.ToString(resp["expires_at"]),
	}
	if session.ID == "" || session.CheckoutURL == "" {
		return entities.CheckoutSession{}, fmt.Errorf("%w: checkout response missing id or url", ErrRecurrenteRequestFailed)
	}
	log.Printf("[gateway][recurrente] create checkout success checkout_id=%s", session.ID)
	return session, nil
}

// GetCheckout fetches the raw checkout object. The caller interprets it so
// schema drift stays out of this layer.
func (g *RecurrenteGateway) GetCheckout(ctx context.Context, settings entities.EventSettings, checkoutID string) (map[string]any, error) {
	log.Printf("[gateway][recurrente] get checkout start checkout_id=%s", checkoutID)
	return g.do(ctx, settings, http.MethodGet, "/checkouts/"+url.PathEscape(checkoutID), nil)
}

// RefundPayment requests a (possibly partial) refund of a gateway payment.
func (g *RecurrenteGateway) RefundPayment(ctx context.Context, settings entities.EventSettings, paymentID string, amountCents int64) (map[string]any, error) {
	log.Printf("[gateway][recurrente] refund start payment_id=%s amount_cents=%d", paymentID, amountCents)

	payload := map[string]any{"payment_id": paymentID}
	if amountCents > 0 {
		payload["amount_in_cents"] = amountCents
	}
	resp, err := g.do(ctx, settings, http.MethodPost, "/refunds", payload)
	if err != nil {
		return nil, err
	}
	log.Printf("[gateway][recurrente] refund success payment_id=%s refund_id=%s", paymentID, cast.ToString(resp["id"]))
	return resp, nil
}

func (g *RecurrenteGateway) do(ctx context.Context, settings entities.EventSettings, method, path string, payload any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, settings.BaseURL()+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-PUBLIC-KEY", settings.APIKey)
	req.Header.Set("X-SECRET-KEY", settings.APISecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[gateway][recurrente] request failed method=%s path=%s err=%v", method, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	parsed := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			parsed = map[string]any{}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[gateway][recurrente] non-2xx method=%s path=%s status=%d body_len=%d", method, path, resp.StatusCode, len(raw))
		// Surface the parsed body so callers can salvage details such as an
		// existing user id from duplicate-email errors.
		if method == http.MethodPost && path == "/users" && dig(parsed, "user", "id") != nil {
			return parsed, nil
		}
		return nil, fmt.Errorf("%w: status=%d", ErrRecurrenteRequestFailed, resp.StatusCode)
	}
	return parsed, nil
}

func dig(m map[string]any, keys ...string) any {
	var current any = m
	for _, key := range keys {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = node[key]
	}
	return current
}
