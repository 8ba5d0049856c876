package forecast

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"smartstock/gbt"
)

// TrainOptions control one training run over all SKUs.
type TrainOptions struct {
	MinDays     int
	NEstimators int
	Force       bool
}

// DefaultTrainOptions returns the standard run configuration.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{MinDays: 30, NEstimators: 100, Force: false}
}

// TrainStatus classifies the outcome for one SKU.
type TrainStatus string

const (
	StatusTrained TrainStatus = "trained"
	StatusSkipped TrainStatus = "skipped"
	StatusFailed  TrainStatus = "failed"
)

// TrainResult is the per-SKU report of a training run.
type TrainResult struct {
	SKU       string      `json:"sku"`
	Status    TrainStatus `json:"status"`
	Reason    string      `json:"reason,omitempty"`
	DaysUsed  int         `json:"days_used,omitempty"`
	MAE       float64     `json:"mae,omitempty"`
	RMSE      float64     `json:"rmse,omitempty"`
	ModelPath string      `json:"model_path,omitempty"`
}

// Trainer fits one model per SKU from daily-aggregated transactions. The
// artifact directory and the append-only training log are explicit
// construction-time configuration.
type Trainer struct {
	ds      DataSource
	store   *ModelStore
	logPath string
}

func NewTrainer(ds DataSource, store *ModelStore, logPath string) *Trainer {
	return &Trainer{ds: ds, store: store, logPath: logPath}
}

// TrainAll runs the pipeline for every known SKU. Insufficient history and
// zero variance are reported skips, not errors; a failure on one SKU never
// aborts the batch.
func (t *Trainer) TrainAll(ctx context.Context, opts TrainOptions) ([]TrainResult, error) {
	skus, err := t.ds.ListSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("trainer: list skus: %w", err)
	}

	collisions := sanitizeCollisions(skus)

	results := make([]TrainResult, 0, len(skus))
	for _, sku := range skus {
		log.Printf("Processing SKU: %s", sku)

		if other, ok := collisions[sku]; ok {
			results = append(results, TrainResult{
				SKU:    sku,
				Status: StatusSkipped,
				Reason: fmt.Sprintf("sanitized key collides with SKU %q", other),
			})
			continue
		}

		res := t.trainOne(ctx, sku, opts)
		switch res.Status {
		case StatusTrained:
			log.Printf("✅ Model saved for %s | MAE=%.2f | RMSE=%.2f", sku, res.MAE, res.RMSE)
		case StatusSkipped:
			log.Printf(" - %s skipped: %s", sku, res.Reason)
		case StatusFailed:
			log.Printf("❌ %s failed: %s", sku, res.Reason)
		}
		results = append(results, res)
	}
	return results, nil
}

// trainOne handles a single SKU. Panics from the fitting internals are
// converted into a failed result here so the batch keeps going.
func (t *Trainer) trainOne(ctx context.Context, sku string, opts TrainOptions) (res TrainResult) {
	res = TrainResult{SKU: sku}
	defer func() {
		if r := recover(); r != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("training panic: %v", r)
		}
	}()

	rows, err := t.ds.TransactionsFor(ctx, sku)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("load transactions: %v", err)
		return res
	}
	if len(rows) == 0 {
		res.Status = StatusSkipped
		res.Reason = "no transactions"
		return res
	}

	series := BuildDailySeries(rows)
	if series.Len() < opts.MinDays {
		res.Status = StatusSkipped
		res.Reason = fmt.Sprintf("only %d days of history; need %d", series.Len(), opts.MinDays)
		return res
	}
	if series.Variance() == 0 {
		res.Status = StatusSkipped
		res.Reason = "zero variance in daily quantities"
		return res
	}

	X, y := TrainingTable(series)

	params := gbt.DefaultParams()
	if opts.NEstimators > 0 {
		params.NEstimators = opts.NEstimators
	}
	model, err := gbt.Fit(X, y, params)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("fit: %v", err)
		return res
	}

	// In-sample health signal. There is intentionally no held-out split:
	// these numbers track fit quality over time, they are not validation.
	res.MAE, res.RMSE = trainingMetrics(model, X, y)
	res.DaysUsed = series.Len()

	if !opts.Force && t.store.Exists(sku) {
		res.Status = StatusSkipped
		res.Reason = "model artifact already exists (use force to overwrite)"
		res.ModelPath = t.store.Path(sku)
		return res
	}

	path, _, err := t.store.Save(sku, model, opts.Force)
	if err != nil {
		res.Status = StatusFailed
		res.Reason = fmt.Sprintf("persist: %v", err)
		return res
	}
	res.ModelPath = path

	if err := t.appendLog(res); err != nil {
		// The model is already persisted; a log failure should not undo that.
		log.Printf("⚠️  Failed to append training log for %s: %v", sku, err)
	}

	res.Status = StatusTrained
	return res
}

func trainingMetrics(m *gbt.Model, X [][]float64, y []float64) (mae, rmse float64) {
	absErr := make([]float64, len(y))
	sqErr := make([]float64, len(y))
	for i, row := range X {
		pred, _ := m.Predict(row)
		d := y[i] - pred
		absErr[i] = math.Abs(d)
		sqErr[i] = d * d
	}
	return stat.Mean(absErr, nil), math.Sqrt(stat.Mean(sqErr, nil))
}

// appendLog writes one Training Log Record. The file is append-only CSV with
// a header created on first use.
func (t *Trainer) appendLog(res TrainResult) error {
	if t.logPath == "" {
		return nil
	}

	f, err := os.OpenFile(t.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write([]string{"timestamp", "sku", "days_used", "mae", "rmse", "model_path"}); err != nil {
			return err
		}
	}
	record := []string{
		time.Now().Format(time.RFC3339),
		res.SKU,
		strconv.Itoa(res.DaysUsed),
		strconv.FormatFloat(round4(res.MAE), 'f', -1, 64),
		strconv.FormatFloat(round4(res.RMSE), 'f', -1, 64),
		res.ModelPath,
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// sanitizeCollisions maps each SKU whose sanitized key is shared with another
// SKU to one of the SKUs it collides with.
func sanitizeCollisions(skus []string) map[string]string {
	byKey := make(map[string][]string)
	for _, sku := range skus {
		key := SanitizeSKU(sku)
		byKey[key] = append(byKey[key], sku)
	}

	out := make(map[string]string)
	for _, group := range byKey {
		if len(group) < 2 {
			continue
		}
		for i, sku := range group {
			other := group[0]
			if i == 0 {
				other = group[1]
			}
			out[sku] = other
		}
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
