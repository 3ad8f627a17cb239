package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/bazario-dev/bazario-api/internal/router"
	"github.com/bazario-dev/bazario-api/pkg/global"
	"github.com/bazario-dev/bazario-api/pkg/mongo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()
	router.InitEngine()
	router.InitializeRoutes()

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
