// Package forecast implements the demand forecasting pipeline: daily series
// construction from sales transactions, feature building, per-SKU model
// training and persistence, prediction with mean fallback, and reorder
// quantity recommendation.
package forecast

import (
	"context"
	"time"
)

// SalesRow is one raw sales observation for a SKU.
type SalesRow struct {
	Date time.Time
	SKU  string
	Qty  float64
}

// DataSource is the contract the persistence layer satisfies to feed the
// pipeline. Implementations must aggregate stock across stores.
type DataSource interface {
	ListSKUs(ctx context.Context) ([]string, error)
	TransactionsFor(ctx context.Context, sku string) ([]SalesRow, error)
	CurrentStockFor(ctx context.Context, sku string) (int, error)
	LeadTimeDays(ctx context.Context, sku string) (int, error)
	SafetyStock(ctx context.Context, sku string) (int, error)
}
