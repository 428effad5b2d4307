package routes

import (
	"log"
	"strconv"

	_ "ticketing_recurrente/docs" // This will be auto-generated
	"ticketing_recurrente/internal/adapter/http/handlers"
	repository "ticketing_recurrente/internal/adapter/persistence/repository"
	"ticketing_recurrente/internal/infrastructure/cache"
	"ticketing_recurrente/internal/infrastructure/database"
	"ticketing_recurrente/internal/infrastructure/payments"
	"ticketing_recurrente/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	redisCache := cache.ConnectRedis()

	orderRepo := repository.NewOrderDynamoRepository(ddb)
	paymentRepo := repository.NewPaymentDynamoRepository(ddb)
	settingsRepo := repository.NewSettingsDynamoRepository(ddb)
	orderLogRepo := repository.NewOrderLogDynamoRepository(ddb)

	gateway := payments.NewRecurrenteGateway()

	host := usecase.NewOrderService(orderRepo, paymentRepo, orderLogRepo)
	engine := usecase.NewPaymentConfirmer(paymentRepo, host, redisCache)

	webhookUseCase := usecase.NewWebhookUseCase(
		usecase.NewWebhookDeduper(redisCache),
		usecase.NewSignatureVerifier(),
		usecase.NewRecordLocator(orderRepo, paymentRepo),
		engine,
		settingsRepo,
	)
	checkoutUseCase := usecase.NewCheckoutUseCase(orderRepo, paymentRepo, settingsRepo, gateway, engine, host)

	webhookHandler := handlers.NewWebhookHandler(webhookUseCase)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addRecurrenteRoutes(v1, webhookHandler, checkoutHandler, settingsHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
