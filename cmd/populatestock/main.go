// Command populatestock seeds a random stock quantity for every
// store/product pair that has no stock row yet. Useful for demo
// environments after a sales import.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"smartstock/database"

	"github.com/joho/godotenv"
)

func main() {
	minQty := flag.Int("min", 0, "Minimum seeded quantity")
	maxQty := flag.Int("max", 100, "Maximum seeded quantity")
	seed := flag.Int64("seed", 42, "Random seed")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	if *maxQty < *minQty {
		log.Fatal("-max must be >= -min")
	}

	database.InitDB(databaseURL)
	defer database.CloseDB()

	ctx := context.Background()
	db := database.GetDB()

	rows, err := db.Query(ctx, `
		SELECT s.id, p.id
		FROM stores s
		CROSS JOIN products p
		LEFT JOIN stock st ON st.store_id = s.id AND st.product_id = p.id
		WHERE st.id IS NULL`)
	if err != nil {
		log.Fatalf("Failed to list missing stock rows: %v", err)
	}

	type pair struct{ storeID, productID int64 }
	var missing []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.storeID, &p.productID); err != nil {
			rows.Close()
			log.Fatalf("Failed to scan row: %v", err)
		}
		missing = append(missing, p)
	}
	rows.Close()
	if rows.Err() != nil {
		log.Fatalf("Failed to read rows: %v", rows.Err())
	}

	rng := rand.New(rand.NewSource(*seed))
	created := 0
	for _, p := range missing {
		qty := *minQty + rng.Intn(*maxQty-*minQty+1)
		_, err := db.Exec(ctx, `
			INSERT INTO stock (store_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (store_id, product_id) DO NOTHING`,
			p.storeID, p.productID, qty)
		if err != nil {
			log.Fatalf("Failed to insert stock row: %v", err)
		}
		created++
	}

	fmt.Printf("Seeded %d stock rows (quantities %d-%d).\n", created, *minQty, *maxQty)
}
