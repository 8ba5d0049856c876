package forecast

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// LoadSalesCSV reads a sales window from a CSV file with columns
// date, sku, qty (header required, extra columns ignored). A missing path or
// file yields an empty window, not an error: an absent dataset simply means
// every prediction falls back. Truncated rows and rows with unparseable
// dates or quantities are dropped.
func LoadSalesCSV(path string) ([]SalesRow, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("sales csv: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("sales csv: read header: %w", err)
	}

	dateIdx, skuIdx, qtyIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case "date":
			dateIdx = i
		case "sku":
			skuIdx = i
		case "qty":
			qtyIdx = i
		}
	}
	if dateIdx < 0 || skuIdx < 0 || qtyIdx < 0 {
		return nil, fmt.Errorf("sales csv: %s must have date, sku and qty columns", path)
	}
	minFields := dateIdx
	if skuIdx > minFields {
		minFields = skuIdx
	}
	if qtyIdx > minFields {
		minFields = qtyIdx
	}

	var rows []SalesRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sales csv: read row: %w", err)
		}

		if len(record) <= minFields {
			continue
		}
		date, err := parseDate(record[dateIdx])
		if err != nil {
			continue
		}
		qty, err := strconv.ParseFloat(record[qtyIdx], 64)
		if err != nil {
			continue
		}
		rows = append(rows, SalesRow{Date: date, SKU: record[skuIdx], Qty: qty})
	}
	return rows, nil
}

// WriteSuggestionsCSV exports a suggestion batch as the flat prediction file
// consumed by the reorder trend report.
func WriteSuggestionsCSV(path string, suggestions []Suggestion) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("suggestions csv: create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"sku", "predicted_daily_demand", "recommended_reorder_qty"}); err != nil {
		return err
	}
	for _, s := range suggestions {
		record := []string{
			s.SKU,
			strconv.FormatFloat(s.PredictedDailyDemand, 'f', 2, 64),
			strconv.Itoa(s.RecommendedReorderQty),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
