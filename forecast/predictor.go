package forecast

import (
	"context"
	"fmt"
	"math"
)

// PredictionSource says where a predicted value came from.
type PredictionSource string

const (
	// SourceModel: a persisted model produced the value.
	SourceModel PredictionSource = "model"
	// SourceMean: fallback to the historical daily mean.
	SourceMean PredictionSource = "mean"
	// SourceEmpty: the SKU had no rows in the recent window.
	SourceEmpty PredictionSource = "empty"
)

// Prediction is the result of a demand prediction. The value is always
// usable (≥ 0); Source and Reason keep the fallback cause inspectable
// instead of disappearing into a silent catch.
type Prediction struct {
	SKU                  string           `json:"sku"`
	PredictedDailyDemand float64          `json:"predicted_daily_demand"`
	Source               PredictionSource `json:"source"`
	Reason               string           `json:"reason,omitempty"`
}

// Predictor predicts daily demand for one SKU from a recent sales window.
// Prediction never hard-fails: no model or a failing model degrades to the
// historical mean so the reorder engine always gets a number.
type Predictor struct {
	store *ModelStore
}

func NewPredictor(store *ModelStore) *Predictor {
	return &Predictor{store: store}
}

// PredictDailyDemand restricts the window to rows for the SKU, builds the
// latest feature row and predicts with the SKU's model if one is persisted.
// An empty window short-circuits to 0. Fallback is the mean of the daily
// series, rounded to 2 decimals and clipped at 0.
func (p *Predictor) PredictDailyDemand(sku string, window []SalesRow) Prediction {
	var rows []SalesRow
	for _, r := range window {
		if r.SKU == sku {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return Prediction{SKU: sku, Source: SourceEmpty}
	}

	series := BuildDailySeries(rows)
	x := InferenceRow(series)

	var reason string
	if model, ok := p.store.Load(sku); ok {
		pred, err := model.Predict(x)
		if err == nil {
			return Prediction{
				SKU:                  sku,
				PredictedDailyDemand: math.Max(0, pred),
				Source:               SourceModel,
			}
		}
		reason = fmt.Sprintf("model prediction failed: %v", err)
	} else {
		reason = "no model artifact"
	}

	return Prediction{
		SKU:                  sku,
		PredictedDailyDemand: math.Max(0, round2(series.Mean())),
		Source:               SourceMean,
		Reason:               reason,
	}
}

// PredictFor loads the SKU's transaction history from the data source and
// predicts from it. This is the single-SKU operation behind the API.
func (p *Predictor) PredictFor(ctx context.Context, ds DataSource, sku string) (Prediction, error) {
	rows, err := ds.TransactionsFor(ctx, sku)
	if err != nil {
		return Prediction{}, fmt.Errorf("predictor: load transactions for %s: %w", sku, err)
	}
	pred := p.PredictDailyDemand(sku, rows)
	pred.PredictedDailyDemand = round2(pred.PredictedDailyDemand)
	return pred, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
