package main

import (
	"log"
	"os"

	"smartstock/cache"
	"smartstock/config"
	"smartstock/database"
	"smartstock/forecast"
	"smartstock/handlers"
	"smartstock/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	config.LoadFromEnv()
	if config.AppConfig.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Initialize database
	database.InitDB(databaseURL)
	defer database.CloseDB()

	// Wire the forecasting pipeline
	modelStore, err := forecast.NewModelStore(config.AppConfig.ModelDir)
	if err != nil {
		log.Fatalf("Failed to initialize model store: %v", err)
	}
	repo := database.NewRepository(database.GetDB())
	predictor := forecast.NewPredictor(modelStore)
	trainer := forecast.NewTrainer(repo, modelStore, config.AppConfig.TrainingLogPath)
	engine := forecast.NewEngine(repo, predictor)

	// Prediction cache is optional; unset REDIS_HOST disables it.
	redisClient := cache.NewRedisClient(os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"), os.Getenv("REDIS_PASSWORD"))

	handlers.InitForecast(repo, trainer, predictor, engine, redisClient)

	app := fiber.New()

	app.Use(recover.New())

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	addr := ":3000"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	log.Fatal(app.Listen(addr))
}
