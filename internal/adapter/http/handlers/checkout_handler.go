package handlers

import (
	"errors"
	"log"
	"net/http"

	request "ticketing_recurrente/internal/adapter/http/dto/request"
	response "ticketing_recurrente/internal/adapter/http/dto/response"
	"ticketing_recurrente/internal/usecase"
	"ticketing_recurrente/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// CheckoutHandler handles the outbound half of the integration: starting
// hosted checkouts, status refresh and refunds.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreateCheckout starts a hosted checkout session for an order.
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")

	var payload request.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}
	orderCode := payload.ResolveOrderCode()
	log.Printf("[checkout][handler] create start organizer=%s event=%s order=%s", organizer, event, orderCode)

	urls := usecase.ReturnURLs{Success: payload.SuccessURL, Cancel: payload.CancelURL, Webhook: payload.WebhookURL}
	start, err := h.usecase.CreateCheckout(c.Request.Context(), organizer, event, orderCode, urls)
	if err != nil {
		log.Printf("[checkout][handler] create failed order=%s err=%v", orderCode, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create success order=%s payment_id=%s", orderCode, start.PaymentID)

	c.JSON(http.StatusCreated, response.FromCheckoutStart(start))
}

// UpdatePaymentStatus polls the gateway and reconciles the local payment.
func (h *CheckoutHandler) UpdatePaymentStatus(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")

	var payload request.PaymentStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil || !payload.HasReference() {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] status refresh order=%s payment_id=%s", payload.ResolveOrderCode(), payload.PaymentID)

	payment, err := h.usecase.UpdatePaymentStatus(c.Request.Context(), organizer, event, payload.ResolveOrderCode(), payload.OrderSecret, payload.PaymentID)
	if err != nil {
		log.Printf("[checkout][handler] status refresh failed err=%v", err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// GetPaymentStatus returns the local view of an order's payment.
func (h *CheckoutHandler) GetPaymentStatus(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")
	orderCode := c.Query("order_code")
	secret := c.Query("order_secret")
	if orderCode == "" || secret == "" {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	payment, err := h.usecase.GetPaymentStatus(c.Request.Context(), organizer, event, orderCode, secret)
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// Refund requests a refund of a confirmed payment.
func (h *CheckoutHandler) Refund(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")

	var payload request.RefundRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] refund start payment_id=%s amount_cents=%d", payload.PaymentID, payload.AmountCents)

	payment, err := h.usecase.Refund(c.Request.Context(), organizer, event, payload.PaymentID, payload.AmountCents)
	if err != nil {
		log.Printf("[checkout][handler] refund failed payment_id=%s err=%v", payload.PaymentID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] refund success payment_id=%s", payload.PaymentID)

	c.JSON(http.StatusOK, response.FromPayment(payment))
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PROVIDER_NOT_CONFIGURED", "Recurrente is not configured for this event", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOrderSecretMismatch):
		return pkg.NewDomainErrorSimple("ORDER_SECRET_MISMATCH", "Order secret does not match", http.StatusForbidden)
	case errors.Is(err, usecase.ErrPaymentNotRefundable):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_REFUNDABLE", "Payment is not refundable", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
