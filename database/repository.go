package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"smartstock/forecast"
	"smartstock/models"
)

// Repository implements the forecast.DataSource contract on top of the
// Postgres schema, plus persistence for generated reorder predictions.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// ListSKUs returns every distinct product SKU known to the system.
func (r *Repository) ListSKUs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT sku FROM products ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list skus: %w", err)
	}
	defer rows.Close()

	var skus []string
	for rows.Next() {
		var sku string
		if err := rows.Scan(&sku); err != nil {
			return nil, fmt.Errorf("scan sku: %w", err)
		}
		skus = append(skus, sku)
	}
	return skus, rows.Err()
}

// TransactionsFor returns per-date quantity totals for a SKU, ordered by
// date, each row tagged with the SKU.
func (r *Repository) TransactionsFor(ctx context.Context, sku string) ([]forecast.SalesRow, error) {
	query := `
		SELECT t.date, SUM(t.quantity_sold)
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE p.sku = $1
		GROUP BY t.date
		ORDER BY t.date
	`
	rows, err := r.db.Query(ctx, query, sku)
	if err != nil {
		return nil, fmt.Errorf("transactions for %s: %w", sku, err)
	}
	defer rows.Close()

	var out []forecast.SalesRow
	for rows.Next() {
		var date time.Time
		var qty float64
		if err := rows.Scan(&date, &qty); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		out = append(out, forecast.SalesRow{Date: date, SKU: sku, Qty: qty})
	}
	return out, rows.Err()
}

// CurrentStockFor returns the stock quantity for a SKU summed across stores.
func (r *Repository) CurrentStockFor(ctx context.Context, sku string) (int, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity), 0)
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE p.sku = $1
	`
	var total int
	if err := r.db.QueryRow(ctx, query, sku).Scan(&total); err != nil {
		return 0, fmt.Errorf("stock for %s: %w", sku, err)
	}
	return total, nil
}

// LeadTimeDays returns the configured lead time for a SKU's product.
func (r *Repository) LeadTimeDays(ctx context.Context, sku string) (int, error) {
	var days int
	err := r.db.QueryRow(ctx, `SELECT lead_time_days FROM products WHERE sku = $1`, sku).Scan(&days)
	if err != nil {
		return 0, fmt.Errorf("lead time for %s: %w", sku, err)
	}
	return days, nil
}

// SafetyStock returns the configured safety stock for a SKU's product.
func (r *Repository) SafetyStock(ctx context.Context, sku string) (int, error) {
	var qty int
	err := r.db.QueryRow(ctx, `SELECT safety_stock FROM products WHERE sku = $1`, sku).Scan(&qty)
	if err != nil {
		return 0, fmt.Errorf("safety stock for %s: %w", sku, err)
	}
	return qty, nil
}

// SavePredictions upserts a suggestion batch; the latest value per SKU wins.
func (r *Repository) SavePredictions(ctx context.Context, suggestions []forecast.Suggestion) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save predictions: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reorder_predictions (sku, predicted_qty, recommended_reorder_qty, generated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (sku) DO UPDATE
		SET predicted_qty = EXCLUDED.predicted_qty,
		    recommended_reorder_qty = EXCLUDED.recommended_reorder_qty,
		    generated_at = EXCLUDED.generated_at
	`
	for _, s := range suggestions {
		if _, err := tx.Exec(ctx, query, s.SKU, s.PredictedDailyDemand, s.RecommendedReorderQty); err != nil {
			return fmt.Errorf("save prediction for %s: %w", s.SKU, err)
		}
	}
	return tx.Commit(ctx)
}

// ListPredictions returns the persisted suggestion batch, newest first.
func (r *Repository) ListPredictions(ctx context.Context) ([]models.ReorderPrediction, error) {
	query := `
		SELECT sku, predicted_qty, recommended_reorder_qty, generated_at
		FROM reorder_predictions
		ORDER BY generated_at DESC, sku
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReorderPrediction, 0)
	for rows.Next() {
		var p models.ReorderPrediction
		if err := rows.Scan(&p.SKU, &p.PredictedQty, &p.ReorderQty, &p.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
