package main

import (
	_ "ticketing_recurrente/docs"
	"ticketing_recurrente/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Recurrente Payment Service API
// @version         1.0
// @description     Recurrente checkout and webhook reconciliation service for the ticketing platform, backed by DynamoDB and Redis.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
