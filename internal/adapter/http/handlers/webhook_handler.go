package handlers

import (
	"log"
	"net/http"

	response "ticketing_recurrente/internal/adapter/http/dto/response"
	"ticketing_recurrente/internal/usecase"
	"ticketing_recurrente/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles inbound Recurrente notifications.
//
// The status code is the retry contract with the gateway: 2xx acknowledges
// and stops retries, 5xx asks for another delivery. Business rejections that
// retrying cannot fix (quota exhausted, unhandled event types) are therefore
// acknowledged with 200.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
}

func NewWebhookHandler(uc usecase.IWebhookUseCase) *WebhookHandler {
	return &WebhookHandler{usecase: uc}
}

// HandleTenantWebhook processes a notification on the event-scoped endpoint.
func (h *WebhookHandler) HandleTenantWebhook(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")
	log.Printf("[webhook][handler] tenant delivery organizer=%s event=%s", organizer, event)

	body, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := h.usecase.ProcessTenant(c.Request.Context(), organizer, event, body, c.Request.Header)
	h.respond(c, res, err)
}

// HandleGlobalWebhook processes a notification on the shared endpoint; the
// tenant is resolved from the notification metadata.
func (h *WebhookHandler) HandleGlobalWebhook(c *gin.Context) {
	log.Printf("[webhook][handler] global delivery")

	body, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := h.usecase.ProcessGlobal(c.Request.Context(), body, c.Request.Header)
	h.respond(c, res, err)
}

func (h *WebhookHandler) respond(c *gin.Context, res usecase.WebhookResult, err error) {
	if err != nil {
		log.Printf("[webhook][handler] processing failed err=%v", err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	status := webhookStatusCode(res.Outcome)
	log.Printf("[webhook][handler] done outcome=%s status=%d order=%s payment_id=%s", res.Outcome, status, res.OrderCode, res.PaymentID)
	c.JSON(status, response.FromWebhookResult(res))
}

func webhookStatusCode(outcome usecase.WebhookOutcome) int {
	switch outcome {
	case usecase.OutcomeInvalidPayload, usecase.OutcomeMissingData:
		return http.StatusBadRequest
	case usecase.OutcomeBadSignature:
		return http.StatusUnauthorized
	case usecase.OutcomeOrderNotFound, usecase.OutcomePaymentNotFound:
		return http.StatusNotFound
	case usecase.OutcomeContended:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}
