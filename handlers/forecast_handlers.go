package handlers

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"

	"smartstock/cache"
	"smartstock/config"
	"smartstock/database"
	"smartstock/forecast"

	"github.com/gofiber/fiber/v2"
)

// Forecasting components are constructed once in main and injected here so
// handlers stay thin.
var (
	forecastRepo    *database.Repository
	forecastTrainer *forecast.Trainer
	predictor       *forecast.Predictor
	reorderEngine   *forecast.Engine
	predictionCache *cache.RedisClient
)

// InitForecast wires the forecasting components into the handler layer.
func InitForecast(repo *database.Repository, trainer *forecast.Trainer, p *forecast.Predictor, engine *forecast.Engine, rc *cache.RedisClient) {
	forecastRepo = repo
	forecastTrainer = trainer
	predictor = p
	reorderEngine = engine
	predictionCache = rc
}

// salesWindow returns the CSV-backed sales window when one is configured or
// requested; a nil window makes the engine read per-SKU history from the
// database.
func salesWindow(csvOverride string) ([]forecast.SalesRow, error) {
	path := csvOverride
	if path == "" {
		path = config.AppConfig.SalesCSVPath
	}
	return forecast.LoadSalesCSV(path)
}

// HandlePredictSKU predicts daily demand for one SKU.
// GET /api/v1/forecast/predict?sku=
func HandlePredictSKU(c *fiber.Ctx) error {
	sku := c.Query("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "SKU query parameter is required"})
	}

	ctx := context.Background()
	var cached forecast.Prediction
	if predictionCache.Get(ctx, cache.PredictionKey(sku), &cached) {
		return c.JSON(fiber.Map{"status": "success", "data": cached, "cached": true})
	}

	window, err := salesWindow(c.Query("csv"))
	if err != nil {
		log.Printf("Error loading sales window: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load sales window"})
	}

	var pred forecast.Prediction
	if window != nil {
		pred = predictor.PredictDailyDemand(sku, window)
	} else {
		pred, err = predictor.PredictFor(ctx, forecastRepo, sku)
		if err != nil {
			log.Printf("Prediction failed for %s: %v", sku, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Prediction failed"})
		}
	}

	if err := predictionCache.Set(ctx, cache.PredictionKey(sku), pred, cache.PredictionTTL); err != nil {
		log.Printf("⚠️  Failed to cache prediction for %s: %v", sku, err)
	}

	return c.JSON(fiber.Map{"status": "success", "data": pred})
}

// HandleRetrainModels retrains models for all SKUs.
// POST /api/v1/forecast/retrain
func HandleRetrainModels(c *fiber.Ctx) error {
	opts := forecast.DefaultTrainOptions()
	opts.Force = true
	if config.AppConfig.MinTrainingDays > 0 {
		opts.MinDays = config.AppConfig.MinTrainingDays
	}

	var body struct {
		MinDays     *int  `json:"min_days"`
		NEstimators *int  `json:"n_estimators"`
		Force       *bool `json:"force"`
	}
	if err := c.BodyParser(&body); err == nil {
		if body.MinDays != nil {
			opts.MinDays = *body.MinDays
		}
		if body.NEstimators != nil {
			opts.NEstimators = *body.NEstimators
		}
		if body.Force != nil {
			opts.Force = *body.Force
		}
	}

	results, err := forecastTrainer.TrainAll(context.Background(), opts)
	if err != nil {
		log.Printf("Training run failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Training run failed"})
	}

	// Retrained models make cached predictions stale.
	for _, r := range results {
		if r.Status == forecast.StatusTrained {
			_ = predictionCache.Delete(context.Background(), cache.PredictionKey(r.SKU))
		}
	}

	return c.JSON(fiber.Map{"status": "success", "data": results})
}

// HandleReorderSuggestions generates the reorder suggestion set. With
// save=true the batch is persisted (latest per SKU wins) and exported to the
// flat CSV file.
// GET /api/v1/stock/reorder-suggestions?csv=&save=
func HandleReorderSuggestions(c *fiber.Ctx) error {
	ctx := context.Background()

	window, err := salesWindow(c.Query("csv"))
	if err != nil {
		log.Printf("Error loading sales window: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to load sales window"})
	}

	suggestions, err := reorderEngine.GenerateSuggestions(ctx, window)
	if err != nil {
		log.Printf("Error generating suggestions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate suggestions"})
	}

	if c.QueryBool("save", false) {
		if err := forecastRepo.SavePredictions(ctx, suggestions); err != nil {
			log.Printf("Error persisting suggestions: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to persist suggestions"})
		}
		if err := forecast.WriteSuggestionsCSV(config.AppConfig.SuggestionCSVPath, suggestions); err != nil {
			log.Printf("⚠️  Failed to export suggestion CSV: %v", err)
		}
	}

	return c.JSON(fiber.Map{"status": "success", "data": suggestions})
}

// HandleReorderPredictions returns the persisted suggestion batch.
// GET /api/v1/forecast/reorder-predictions
func HandleReorderPredictions(c *fiber.Ctx) error {
	predictions, err := forecastRepo.ListPredictions(context.Background())
	if err != nil {
		log.Printf("Error listing predictions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve predictions"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": predictions})
}

// HandleReorderTrend serves the flat CSV export of the latest suggestion
// batch as JSON records.
// GET /api/v1/forecast/reorder-trend
func HandleReorderTrend(c *fiber.Ctx) error {
	f, err := os.Open(config.AppConfig.SuggestionCSVPath)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Prediction file not found"})
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to read prediction file"})
	}

	records := make([]map[string]interface{}, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to read prediction file"})
		}
		record := make(map[string]interface{}, len(header))
		for i, col := range header {
			if v, err := strconv.ParseFloat(row[i], 64); err == nil {
				record[col] = v
			} else {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	return c.JSON(fiber.Map{"status": "success", "data": records})
}
