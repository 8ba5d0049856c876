package config

import (
	"os"
	"strconv"
)

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// Forecasting paths are explicit values here instead of ambient constants so
// the trainer and model store can be constructed per instance (and per test).
type Config struct {
	JWTSecret string

	// ModelDir holds one model artifact per sanitized SKU.
	ModelDir string
	// TrainingLogPath is the append-only training log CSV.
	TrainingLogPath string
	// SuggestionCSVPath is the flat export of the latest suggestion batch.
	SuggestionCSVPath string
	// SalesCSVPath optionally overrides the transaction table as the
	// prediction window source.
	SalesCSVPath string

	MinTrainingDays int
}

// AppConfig holds the application-wide configuration
var AppConfig Config

// LoadFromEnv fills AppConfig from the environment, applying defaults for
// the forecasting paths.
func LoadFromEnv() {
	AppConfig.JWTSecret = os.Getenv("JWT_SECRET")
	AppConfig.ModelDir = envOr("MODEL_DIR", "models")
	AppConfig.TrainingLogPath = envOr("TRAINING_LOG", "models/training_logs.csv")
	AppConfig.SuggestionCSVPath = envOr("SUGGESTION_CSV", "reorder_predictions.csv")
	AppConfig.SalesCSVPath = os.Getenv("SALES_CSV")
	AppConfig.MinTrainingDays = 30
	if v, err := strconv.Atoi(os.Getenv("MIN_TRAINING_DAYS")); err == nil && v > 0 {
		AppConfig.MinTrainingDays = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
