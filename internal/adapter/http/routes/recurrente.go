package routes

import (
	"ticketing_recurrente/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrganizers    = "/organizers"
	PathGlobalWebhook = "/plugins/recurrente/webhook"
)

func addRecurrenteRoutes(rg *gin.RouterGroup, webhookHandler *handlers.WebhookHandler, checkoutHandler *handlers.CheckoutHandler, settingsHandler *handlers.SettingsHandler) {
	// Shared endpoint; the tenant comes from the notification metadata.
	rg.POST(PathGlobalWebhook, webhookHandler.HandleGlobalWebhook)

	organizers := rg.Group(PathOrganizers)
	{
		organizers.PUT("/:organizer/recurrente/settings", settingsHandler.PutSettings)
		organizers.GET("/:organizer/recurrente/settings", settingsHandler.GetSettings)

		events := organizers.Group("/:organizer/events/:event/recurrente")
		{
			events.POST("/webhook", webhookHandler.HandleTenantWebhook)

			events.POST("/checkouts", checkoutHandler.CreateCheckout)
			events.POST("/payments/refresh", checkoutHandler.UpdatePaymentStatus)
			events.GET("/payments/status", checkoutHandler.GetPaymentStatus)
			events.POST("/payments/refund", checkoutHandler.Refund)

			events.PUT("/settings", settingsHandler.PutSettings)
			events.GET("/settings", settingsHandler.GetSettings)
		}
	}
}
