// Command reorder generates reorder suggestions for every SKU and prints
// them as JSON. With -save the batch is also persisted and exported to the
// flat CSV file.
package main

import (
	"context"
	"encoding/json"
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
	csvPath := flag.String("csv", "", "Optional sales CSV to use as the prediction window")
	save := flag.Bool("save", false, "Persist the batch and export the suggestion CSV")
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
	engine := forecast.NewEngine(repo, forecast.NewPredictor(store))

	path := *csvPath
	if path == "" {
		path = config.AppConfig.SalesCSVPath
	}
	window, err := forecast.LoadSalesCSV(path)
	if err != nil {
		log.Fatalf("Failed to load sales CSV: %v", err)
	}

	ctx := context.Background()
	suggestions, err := engine.GenerateSuggestions(ctx, window)
	if err != nil {
		log.Fatalf("Failed to generate suggestions: %v", err)
	}

	if *save {
		if err := repo.SavePredictions(ctx, suggestions); err != nil {
			log.Fatalf("Failed to persist suggestions: %v", err)
		}
		if err := forecast.WriteSuggestionsCSV(config.AppConfig.SuggestionCSVPath, suggestions); err != nil {
			log.Fatalf("Failed to export suggestion CSV: %v", err)
		}
	}

	out, err := json.MarshalIndent(suggestions, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode suggestions: %v", err)
	}
	fmt.Println(string(out))
}
