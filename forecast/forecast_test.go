package forecast

import (
	"context"
	"time"
)

// fakeSource is an in-memory DataSource for tests.
type fakeSource struct {
	skus   []string
	tx     map[string][]SalesRow
	txErr  map[string]error
	stock  map[string]int
	lead   map[string]int
	safety map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		tx:     make(map[string][]SalesRow),
		txErr:  make(map[string]error),
		stock:  make(map[string]int),
		lead:   make(map[string]int),
		safety: make(map[string]int),
	}
}

func (f *fakeSource) addSKU(sku string, rows []SalesRow) {
	f.skus = append(f.skus, sku)
	f.tx[sku] = rows
}

func (f *fakeSource) ListSKUs(ctx context.Context) ([]string, error) {
	return f.skus, nil
}

func (f *fakeSource) TransactionsFor(ctx context.Context, sku string) ([]SalesRow, error) {
	if err := f.txErr[sku]; err != nil {
		return nil, err
	}
	return f.tx[sku], nil
}

func (f *fakeSource) CurrentStockFor(ctx context.Context, sku string) (int, error) {
	return f.stock[sku], nil
}

func (f *fakeSource) LeadTimeDays(ctx context.Context, sku string) (int, error) {
	if v, ok := f.lead[sku]; ok {
		return v, nil
	}
	return 7, nil
}

func (f *fakeSource) SafetyStock(ctx context.Context, sku string) (int, error) {
	if v, ok := f.safety[sku]; ok {
		return v, nil
	}
	return 5, nil
}

// monday is a fixed Monday used as the origin of test series.
var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// dailyRows builds one row per day for a SKU starting at the given date.
func dailyRows(sku string, start time.Time, qtys []float64) []SalesRow {
	rows := make([]SalesRow, 0, len(qtys))
	for i, q := range qtys {
		rows = append(rows, SalesRow{Date: start.AddDate(0, 0, i), SKU: sku, Qty: q})
	}
	return rows
}

// variedQtys returns n days of non-constant quantities.
func variedQtys(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(3 + i%7)
	}
	return out
}
