// Command importsales bulk-loads a historical sales CSV into the store,
// product and transaction tables. Expected columns: date, store, sku, qty
// and optionally unit_price.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"smartstock/database"

	"github.com/jackc/pgx/v4"
	"github.com/joho/godotenv"
)

type salesRecord struct {
	date      time.Time
	store     string
	sku       string
	qty       int
	unitPrice *float64
}

func main() {
	csvPath := flag.String("csv", os.Getenv("SALES_CSV"), "Path to the sales CSV file")
	limit := flag.Int("limit", 0, "Optional: limit number of rows imported (for testing)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if *csvPath == "" {
		log.Fatal("No CSV path given (use -csv or SALES_CSV)")
	}

	database.InitDB(databaseURL)
	defer database.CloseDB()

	records, err := readSalesCSV(*csvPath, *limit)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *csvPath, err)
	}
	if len(records) == 0 {
		log.Fatal("No importable rows found")
	}

	ctx := context.Background()
	storeIDs, err := ensureStores(ctx, records)
	if err != nil {
		log.Fatalf("Failed to create stores: %v", err)
	}
	productIDs, err := ensureProducts(ctx, records)
	if err != nil {
		log.Fatalf("Failed to create products: %v", err)
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{storeIDs[r.store], productIDs[r.sku], r.date, r.qty, r.unitPrice})
	}

	copied, err := database.GetDB().CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		[]string{"store_id", "product_id", "date", "quantity_sold", "unit_price"},
		pgx.CopyFromRows(rows))
	if err != nil {
		log.Fatalf("Bulk insert failed: %v", err)
	}

	fmt.Printf("Import finished: %d transactions, %d stores, %d products.\n",
		copied, len(storeIDs), len(productIDs))
}

func readSalesCSV(path string, limit int) ([]salesRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"date", "store", "sku", "qty"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	priceIdx, hasPrice := col["unit_price"]

	minFields := 0
	for _, name := range []string{"date", "store", "sku", "qty"} {
		if col[name] > minFields {
			minFields = col[name]
		}
	}

	var out []salesRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(row) <= minFields {
			continue
		}
		date, err := time.Parse("2006-01-02", row[col["date"]])
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(row[col["qty"]])
		if err != nil {
			continue
		}
		rec := salesRecord{date: date, store: row[col["store"]], sku: row[col["sku"]], qty: qty}
		if hasPrice && priceIdx < len(row) {
			if p, err := strconv.ParseFloat(row[priceIdx], 64); err == nil {
				rec.unitPrice = &p
			}
		}
		out = append(out, rec)

		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func ensureStores(ctx context.Context, records []salesRecord) (map[string]int64, error) {
	db := database.GetDB()
	ids := make(map[string]int64)
	for _, r := range records {
		if _, ok := ids[r.store]; ok {
			continue
		}
		var id int64
		err := db.QueryRow(ctx, `
			INSERT INTO stores (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = stores.name
			RETURNING id`, r.store).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[r.store] = id
	}
	return ids, nil
}

func ensureProducts(ctx context.Context, records []salesRecord) (map[string]int64, error) {
	db := database.GetDB()
	ids := make(map[string]int64)
	for _, r := range records {
		if _, ok := ids[r.sku]; ok {
			continue
		}
		var id int64
		err := db.QueryRow(ctx, `
			INSERT INTO products (sku, name) VALUES ($1, $1)
			ON CONFLICT (sku) DO UPDATE SET name = products.name
			RETURNING id`, r.sku).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids[r.sku] = id
	}
	return ids, nil
}
