package handlers

import (
	"context"
	"log"

	"smartstock/database"
	"smartstock/models"
	"smartstock/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

// HandleListProducts lists products with optional search on name/sku.
// GET /api/v1/products?search=&page=&pageSize=
func HandleListProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	search := "%" + c.Query("search") + "%"
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)

	var total int
	if err := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE name ILIKE $1 OR sku ILIKE $1`, search).Scan(&total); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count products"})
	}
	pagination := utils.CreatePagination(total, page, pageSize)

	query := `
		SELECT id, sku, name, category, reorder_point, lead_time_days, safety_stock, unit_price
		FROM products
		WHERE name ILIKE $1 OR sku ILIKE $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := db.Query(ctx, query, search, pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve products"})
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.ReorderPoint, &p.LeadTimeDays, &p.SafetyStock, &p.UnitPrice); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan product data"})
		}
		products = append(products, p)
	}

	return c.JSON(fiber.Map{
		"status":     "success",
		"data":       products,
		"pagination": pagination,
	})
}

// HandleGetProduct retrieves one product by id.
// GET /api/v1/products/:productId
func HandleGetProduct(c *fiber.Ctx) error {
	var p models.Product
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id, sku, name, category, reorder_point, lead_time_days, safety_stock, unit_price
		 FROM products WHERE id = $1`, c.Params("productId"),
	).Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.ReorderPoint, &p.LeadTimeDays, &p.SafetyStock, &p.UnitPrice)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve product"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": p})
}

// HandleCreateProduct creates a product. Defaults mirror the schema: reorder
// point 10, lead time 7 days, safety stock 5.
// POST /api/v1/products
func HandleCreateProduct(c *fiber.Ctx) error {
	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.SKU == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "SKU and name are required"})
	}
	if req.ReorderPoint == 0 {
		req.ReorderPoint = 10
	}
	if req.LeadTimeDays == 0 {
		req.LeadTimeDays = 7
	}
	if req.SafetyStock == 0 {
		req.SafetyStock = 5
	}

	err := database.GetDB().QueryRow(context.Background(),
		`INSERT INTO products (sku, name, category, reorder_point, lead_time_days, safety_stock, unit_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		req.SKU, req.Name, req.Category, req.ReorderPoint, req.LeadTimeDays, req.SafetyStock, req.UnitPrice,
	).Scan(&req.ID)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": req})
}

// HandleUpdateProduct updates a product.
// PUT /api/v1/products/:productId
func HandleUpdateProduct(c *fiber.Ctx) error {
	var req models.Product
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	tag, err := database.GetDB().Exec(context.Background(),
		`UPDATE products
		 SET sku = $1, name = $2, category = $3, reorder_point = $4, lead_time_days = $5, safety_stock = $6, unit_price = $7
		 WHERE id = $8`,
		req.SKU, req.Name, req.Category, req.ReorderPoint, req.LeadTimeDays, req.SafetyStock, req.UnitPrice, c.Params("productId"))
	if err != nil {
		log.Printf("Error updating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": req})
}

// HandleDeleteProduct deletes a product and its dependent rows.
// DELETE /api/v1/products/:productId
func HandleDeleteProduct(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(context.Background(),
		`DELETE FROM products WHERE id = $1`, c.Params("productId"))
	if err != nil {
		log.Printf("Error deleting product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete product"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
