package handlers

import (
	"context"
	"log"

	"smartstock/database"
	"smartstock/models"

	"github.com/gofiber/fiber/v2"
)

// HandleListStock lists stock entries, optionally filtered by store/product.
// GET /api/v1/stock?storeId=&productId=
func HandleListStock(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	query := `
		SELECT s.id, s.store_id, s.product_id, s.quantity
		FROM stock s
		WHERE ($1 = 0 OR s.store_id = $1) AND ($2 = 0 OR s.product_id = $2)
		ORDER BY s.id
	`
	rows, err := db.Query(ctx, query, c.QueryInt("storeId", 0), c.QueryInt("productId", 0))
	if err != nil {
		log.Printf("Error listing stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve stock"})
	}
	defer rows.Close()

	entries := make([]models.Stock, 0)
	for rows.Next() {
		var s models.Stock
		if err := rows.Scan(&s.ID, &s.StoreID, &s.ProductID, &s.Quantity); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan stock data"})
		}
		entries = append(entries, s)
	}

	return c.JSON(fiber.Map{"status": "success", "data": entries})
}

// HandleUpsertStock creates or replaces the stock entry for a store/product
// pair.
// PUT /api/v1/stock
func HandleUpsertStock(c *fiber.Ctx) error {
	var req models.Stock
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.StoreID == 0 || req.ProductID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "store_id and product_id are required"})
	}
	if req.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Quantity must be non-negative"})
	}

	err := database.GetDB().QueryRow(context.Background(),
		`INSERT INTO stock (store_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (store_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
		 RETURNING id`,
		req.StoreID, req.ProductID, req.Quantity).Scan(&req.ID)
	if err != nil {
		log.Printf("Error upserting stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to save stock"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": req})
}

// HandleAdjustStock applies a relative quantity change to a stock entry.
// POST /api/v1/stock/adjust
func HandleAdjustStock(c *fiber.Ctx) error {
	var req struct {
		StoreID   int64 `json:"store_id"`
		ProductID int64 `json:"product_id"`
		Delta     int   `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	var newQuantity int
	err := database.GetDB().QueryRow(context.Background(),
		`UPDATE stock SET quantity = quantity + $1
		 WHERE store_id = $2 AND product_id = $3
		 RETURNING quantity`,
		req.Delta, req.StoreID, req.ProductID).Scan(&newQuantity)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Stock entry not found"})
	}
	if newQuantity < 0 {
		// Roll the change back rather than tracking negative stock.
		_, _ = database.GetDB().Exec(context.Background(),
			`UPDATE stock SET quantity = quantity - $1 WHERE store_id = $2 AND product_id = $3`,
			req.Delta, req.StoreID, req.ProductID)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Adjustment would make stock negative"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"quantity": newQuantity}})
}
