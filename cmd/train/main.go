// Command train fits one demand model per SKU from daily-aggregated
// transactions, the offline counterpart of the retrain API endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"smartstock/config"
	"smartstock/database"
	"smartstock/forecast"

	"github.com/joho/godotenv"
)

func main() {
	minDays := flag.Int("min-days", 30, "Minimum days of history to train a model")
	nEstimators := flag.Int("n-estimators", 100, "Number of boosting rounds")
	force := flag.Bool("force", false, "Overwrite existing models")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	config.LoadFromEnv()

	database.InitDB(databaseURL)
	defer database.CloseDB()

	store, err := forecast.NewModelStore(config.AppConfig.ModelDir)
	if err != nil {
		log.Fatalf("Failed to initialize model store: %v", err)
	}

	repo := database.NewRepository(database.GetDB())
	trainer := forecast.NewTrainer(repo, store, config.AppConfig.TrainingLogPath)

	results, err := trainer.TrainAll(context.Background(), forecast.TrainOptions{
		MinDays:     *minDays,
		NEstimators: *nEstimators,
		Force:       *force,
	})
	if err != nil {
		log.Fatalf("Training run failed: %v", err)
	}

	var trained, skipped, failed int
	for _, r := range results {
		switch r.Status {
		case forecast.StatusTrained:
			trained++
		case forecast.StatusSkipped:
			skipped++
		case forecast.StatusFailed:
			failed++
		}
	}
	fmt.Printf("Training complete: %d trained, %d skipped, %d failed. Logs saved to %s\n",
		trained, skipped, failed, config.AppConfig.TrainingLogPath)

	if failed > 0 {
		os.Exit(1)
	}
}
