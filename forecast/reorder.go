package forecast

import (
	"context"
	"fmt"
	"log"
	"math"
)

// Suggestion is one reorder recommendation. A computed output; persisting it
// is the caller's choice.
type Suggestion struct {
	SKU                   string  `json:"sku"`
	PredictedDailyDemand  float64 `json:"predicted_daily_demand"`
	CurrentStock          int     `json:"current_stock"`
	RecommendedReorderQty int     `json:"recommended_reorder_qty"`
}

// Recommend computes the reorder quantity for one product. Lead time is
// floored at 1 so a zero lead time cannot zero out the demand term.
func Recommend(predictedDailyDemand float64, currentStock, leadTimeDays, safetyStock int) int {
	if leadTimeDays < 1 {
		leadTimeDays = 1
	}
	leadTimeDemand := predictedDailyDemand * float64(leadTimeDays)
	qty := int(math.Round(leadTimeDemand + float64(safetyStock) - float64(currentStock)))
	if qty < 0 {
		qty = 0
	}
	return qty
}

// Engine turns predictions into reorder suggestions for every tracked SKU.
type Engine struct {
	ds        DataSource
	predictor *Predictor
}

func NewEngine(ds DataSource, predictor *Predictor) *Engine {
	return &Engine{ds: ds, predictor: predictor}
}

// GenerateSuggestions produces the full suggestion set. When window is
// non-nil it is used as the sales history for every SKU (the CSV-driven
// path); otherwise each SKU's history comes from the data source. A data
// access failure for one SKU is logged and skipped, the batch continues.
func (e *Engine) GenerateSuggestions(ctx context.Context, window []SalesRow) ([]Suggestion, error) {
	skus, err := e.ds.ListSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reorder: list skus: %w", err)
	}

	out := make([]Suggestion, 0, len(skus))
	for _, sku := range skus {
		s, err := e.suggestionFor(ctx, sku, window)
		if err != nil {
			log.Printf("⚠️  Skipping reorder suggestion for %s: %v", sku, err)
			continue
		}
		if err := ValidateSuggestion(s); err != nil {
			// Negative values here mean an upstream defect; fail loudly.
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SuggestionFor computes the recommendation for a single SKU on demand.
func (e *Engine) SuggestionFor(ctx context.Context, sku string, window []SalesRow) (Suggestion, error) {
	s, err := e.suggestionFor(ctx, sku, window)
	if err != nil {
		return Suggestion{}, err
	}
	if err := ValidateSuggestion(s); err != nil {
		return Suggestion{}, err
	}
	return s, nil
}

func (e *Engine) suggestionFor(ctx context.Context, sku string, window []SalesRow) (Suggestion, error) {
	rows := window
	if rows == nil {
		var err error
		rows, err = e.ds.TransactionsFor(ctx, sku)
		if err != nil {
			return Suggestion{}, fmt.Errorf("load transactions: %w", err)
		}
	}

	pred := e.predictor.PredictDailyDemand(sku, rows)

	stock, err := e.ds.CurrentStockFor(ctx, sku)
	if err != nil {
		return Suggestion{}, fmt.Errorf("load stock: %w", err)
	}
	leadTime, err := e.ds.LeadTimeDays(ctx, sku)
	if err != nil {
		return Suggestion{}, fmt.Errorf("load lead time: %w", err)
	}
	safety, err := e.ds.SafetyStock(ctx, sku)
	if err != nil {
		return Suggestion{}, fmt.Errorf("load safety stock: %w", err)
	}

	return Suggestion{
		SKU:                   sku,
		PredictedDailyDemand:  round2(pred.PredictedDailyDemand),
		CurrentStock:          stock,
		RecommendedReorderQty: Recommend(pred.PredictedDailyDemand, stock, leadTime, safety),
	}, nil
}

// ValidateSuggestion rejects values that must be non-negative by
// construction. Clamping happens inside the predictor and Recommend; a
// negative value reaching this boundary signals an upstream defect.
func ValidateSuggestion(s Suggestion) error {
	if s.PredictedDailyDemand < 0 {
		return fmt.Errorf("reorder: negative predicted demand %.2f for %s", s.PredictedDailyDemand, s.SKU)
	}
	if s.CurrentStock < 0 {
		return fmt.Errorf("reorder: negative current stock %d for %s", s.CurrentStock, s.SKU)
	}
	if s.RecommendedReorderQty < 0 {
		return fmt.Errorf("reorder: negative reorder quantity %d for %s", s.RecommendedReorderQty, s.SKU)
	}
	return nil
}
