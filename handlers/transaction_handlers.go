package handlers

import (
	"context"
	"log"

	"smartstock/database"
	"smartstock/models"
	"smartstock/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleListTransactions lists sales transactions, newest first, optionally
// filtered by SKU.
// GET /api/v1/transactions?sku=&page=&pageSize=
func HandleListTransactions(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	sku := c.Query("sku")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)

	var total int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions t JOIN products p ON p.id = t.product_id
		 WHERE ($1 = '' OR p.sku = $1)`, sku).Scan(&total); err != nil {
		log.Printf("Error counting transactions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count transactions"})
	}
	pagination := utils.CreatePagination(total, page, pageSize)

	query := `
		SELECT t.id, t.store_id, t.product_id, t.date, t.quantity_sold, t.unit_price
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE ($1 = '' OR p.sku = $1)
		ORDER BY t.date DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, sku, pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("Error listing transactions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve transactions"})
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.StoreID, &t.ProductID, &t.Date, &t.QuantitySold, &t.UnitPrice); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan transaction data"})
		}
		txs = append(txs, t)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       txs,
		"pagination": pagination,
	})
}

// HandleCreateTransaction records a sale. The unit price is back-filled from
// the product's current price when the request omits it.
// POST /api/v1/transactions
func HandleCreateTransaction(c *fiber.Ctx) error {
	var req models.Transaction
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.StoreID == 0 || req.ProductID == 0 || req.Date.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "store_id, product_id and date are required"})
	}

	err := database.GetDB().QueryRow(context.Background(),
		`INSERT INTO transactions (store_id, product_id, date, quantity_sold, unit_price)
		 VALUES ($1, $2, $3, $4,
		         COALESCE($5, (SELECT unit_price FROM products WHERE id = $2)))
		 RETURNING id, unit_price`,
		req.StoreID, req.ProductID, req.Date, req.QuantitySold, req.UnitPrice,
	).Scan(&req.ID, &req.UnitPrice)
	if err != nil {
		log.Printf("Error creating transaction: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create transaction"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": req})
}
