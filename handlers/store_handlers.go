package handlers

import (
	"context"
	"log"

	"smartstock/database"
	"smartstock/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

// HandleListStores lists all stores.
// GET /api/v1/stores
func HandleListStores(c *fiber.Ctx) error {
	rows, err := database.GetDB().Query(context.Background(),
		`SELECT id, name, location FROM stores ORDER BY name`)
	if err != nil {
		log.Printf("Error listing stores: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve stores"})
	}
	defer rows.Close()

	stores := make([]models.Store, 0)
	for rows.Next() {
		var s models.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Location); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to scan store data"})
		}
		stores = append(stores, s)
	}

	return c.JSON(fiber.Map{"status": "success", "data": stores})
}

// HandleGetStore retrieves one store by id.
// GET /api/v1/stores/:storeId
func HandleGetStore(c *fiber.Ctx) error {
	var s models.Store
	err := database.GetDB().QueryRow(context.Background(),
		`SELECT id, name, location FROM stores WHERE id = $1`, c.Params("storeId"),
	).Scan(&s.ID, &s.Name, &s.Location)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Store not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve store"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": s})
}

// HandleCreateStore creates a store.
// POST /api/v1/stores
func HandleCreateStore(c *fiber.Ctx) error {
	var req models.Store
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Name is required"})
	}

	err := database.GetDB().QueryRow(context.Background(),
		`INSERT INTO stores (name, location) VALUES ($1, $2) RETURNING id`,
		req.Name, req.Location).Scan(&req.ID)
	if err != nil {
		log.Printf("Error creating store: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create store"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": req})
}

// HandleUpdateStore updates a store's name and location.
// PUT /api/v1/stores/:storeId
func HandleUpdateStore(c *fiber.Ctx) error {
	var req models.Store
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Name is required"})
	}

	tag, err := database.GetDB().Exec(context.Background(),
		`UPDATE stores SET name = $1, location = $2 WHERE id = $3`,
		req.Name, req.Location, c.Params("storeId"))
	if err != nil {
		log.Printf("Error updating store: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to update store"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Store not found"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Store updated"})
}

// HandleDeleteStore deletes a store.
// DELETE /api/v1/stores/:storeId
func HandleDeleteStore(c *fiber.Ctx) error {
	tag, err := database.GetDB().Exec(context.Background(),
		`DELETE FROM stores WHERE id = $1`, c.Params("storeId"))
	if err != nil {
		log.Printf("Error deleting store: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to delete store"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Store not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
