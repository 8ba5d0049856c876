package handlers

import (
	"context"
	"log"
	"time"

	"smartstock/database"
	"smartstock/models"
	"smartstock/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// HandleSalesTrend returns per-date sales totals for a SKU over a trailing
// window.
// GET /api/v1/analytics/sales-trend/:sku?days=30
func HandleSalesTrend(c *fiber.Ctx) error {
	sku := c.Params("sku")
	days := c.QueryInt("days", 30)

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	query := `
		SELECT t.date, SUM(t.quantity_sold)
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE p.sku = $1 AND t.date BETWEEN $2 AND $3
		GROUP BY t.date
		ORDER BY t.date
	`
	rows, err := database.GetDB().Query(context.Background(), query, sku, startDate, endDate)
	if err != nil {
		log.Printf("Error loading sales trend for %s: %v", sku, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve sales trend"})
	}
	defer rows.Close()

	points := make([]models.SalesTrendPoint, 0)
	for rows.Next() {
		var p models.SalesTrendPoint
		if err := rows.Scan(&p.Date, &p.TotalSold); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan trend data"})
		}
		points = append(points, p)
	}

	return c.JSON(fiber.Map{"status": "success", "data": points})
}

// HandleDashboardSummary returns the headline numbers for the dashboard.
// Revenue is summed with decimal arithmetic to keep cents exact.
// GET /api/v1/analytics/dashboard/summary
func HandleDashboardSummary(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var totalProducts, totalStock, lowStockItems, todaySales int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&totalProducts); err != nil {
		return dashboardError(c, err)
	}
	if err := db.QueryRow(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM stock`).Scan(&totalStock); err != nil {
		return dashboardError(c, err)
	}
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM stock WHERE quantity < 10`).Scan(&lowStockItems); err != nil {
		return dashboardError(c, err)
	}
	if err := db.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_sold), 0) FROM transactions WHERE date = CURRENT_DATE`).Scan(&todaySales); err != nil {
		return dashboardError(c, err)
	}

	var topSKU *string
	err := db.QueryRow(ctx, `
		SELECT p.sku
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		GROUP BY p.sku
		ORDER BY SUM(t.quantity_sold) DESC
		LIMIT 1
	`).Scan(&topSKU)
	if err != nil {
		topSKU = nil // no transactions yet
	}

	// Today's revenue: per-row qty*price summed as decimals.
	revenue := decimal.Zero
	rows, err := db.Query(ctx, `
		SELECT t.quantity_sold, COALESCE(t.unit_price, p.unit_price)
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.date = CURRENT_DATE
	`)
	if err != nil {
		return dashboardError(c, err)
	}
	defer rows.Close()
	for rows.Next() {
		var qty int
		var price float64
		if err := rows.Scan(&qty, &price); err != nil {
			return dashboardError(c, err)
		}
		revenue = revenue.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"total_products":  totalProducts,
			"total_stock":     totalStock,
			"low_stock_items": lowStockItems,
			"today_sales":     todaySales,
			"today_revenue":   revenue.StringFixed(2),
			"top_sku":         topSKU,
		},
	})
}

func dashboardError(c *fiber.Ctx, err error) error {
	log.Printf("Error building dashboard summary: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to build dashboard summary"})
}

// HandleLowStockAlerts lists stock entries under a threshold and logs the
// rendered alert message.
// GET /api/v1/analytics/low-stock-alerts?threshold=10
func HandleLowStockAlerts(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 10)

	query := `
		SELECT p.sku, p.name, st.name, s.quantity
		FROM stock s
		JOIN products p ON p.id = s.product_id
		JOIN stores st ON st.id = s.store_id
		WHERE s.quantity < $1
		ORDER BY s.quantity
	`
	rows, err := database.GetDB().Query(context.Background(), query, threshold)
	if err != nil {
		log.Printf("Error listing low stock items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve low stock items"})
	}
	defer rows.Close()

	alerts := make([]models.LowStockAlert, 0)
	for rows.Next() {
		var a models.LowStockAlert
		if err := rows.Scan(&a.SKU, &a.Product, &a.Store, &a.Quantity); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan alert data"})
		}
		a.Threshold = threshold
		alerts = append(alerts, a)
	}

	if msg := utils.BuildLowStockMessage(alerts); msg != "" {
		log.Printf("📧 Low stock alert:\n%s", msg)
	}

	return c.JSON(fiber.Map{"status": "success", "data": alerts})
}
