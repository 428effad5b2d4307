package handlers

import (
	"log"
	"net/http"

	request "ticketing_recurrente/internal/adapter/http/dto/request"
	response "ticketing_recurrente/internal/adapter/http/dto/response"
	"ticketing_recurrente/internal/domain/entities"
	"ticketing_recurrente/internal/usecase/interfaces"
	"ticketing_recurrente/pkg"

	"github.com/gin-gonic/gin"
)

// SettingsHandler manages per-tenant Recurrente configuration. Thin enough
// that it talks to the repository directly.

type SettingsHandler struct {
	settings interfaces.ISettingsRepository
}

func NewSettingsHandler(settings interfaces.ISettingsRepository) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// PutSettings creates or replaces the configuration for an organizer (event
// path param absent) or a single event.
func (h *SettingsHandler) PutSettings(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")

	var payload request.PutSettingsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	saved, err := h.settings.Put(c.Request.Context(), entities.EventSettings{
		Organizer:               organizer,
		Event:                   event,
		APIKey:                  payload.APIKey,
		APISecret:               payload.APISecret,
		WebhookSecret:           payload.WebhookSecret,
		TestMode:                payload.TestMode,
		ProductionAPIURL:        payload.ProductionAPIURL,
		SandboxAPIURL:           payload.SandboxAPIURL,
		PaymentDescription:      payload.PaymentDescription,
		DisableAnyStateFallback: payload.DisableAnyStateFallback,
	})
	if err != nil {
		log.Printf("[settings][handler] put failed organizer=%s event=%s err=%v", organizer, event, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[settings][handler] put success organizer=%s event=%s test_mode=%v", organizer, event, saved.TestMode)

	c.JSON(http.StatusOK, response.FromEventSettings(saved))
}

// GetSettings returns the stored configuration with secrets masked.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	organizer := c.Param("organizer")
	event := c.Param("event")

	var (
		s   entities.EventSettings
		err error
	)
	if event == "" {
		s, err = h.settings.GetOrganizerSettings(c.Request.Context(), organizer)
	} else {
		s, err = h.settings.GetEventSettings(c.Request.Context(), organizer, event)
	}
	if err != nil {
		log.Printf("[settings][handler] get failed organizer=%s event=%s err=%v", organizer, event, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if s.Organizer == "" {
		appErr := pkg.NewDomainErrorSimple("SETTINGS_NOT_FOUND", "Settings not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEventSettings(s))
}
