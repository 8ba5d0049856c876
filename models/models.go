package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	FullName *string `json:"full_name,omitempty"`
}

// User represents a backend user. Managers have full access, staff are read-only.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  *string   `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// --- Core Models ---

// Store represents a single retail location.
type Store struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}

// Product is a sellable item identified by its SKU.
type Product struct {
	ID           int64   `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     *string `json:"category,omitempty"`
	ReorderPoint int     `json:"reorder_point"`
	LeadTimeDays int     `json:"lead_time_days"`
	SafetyStock  int     `json:"safety_stock"`
	UnitPrice    float64 `json:"unit_price"`
}

// Stock is the on-hand quantity of a product at one store.
// The forecasting side only ever consumes the sum across stores.
type Stock struct {
	ID        int64 `json:"id"`
	StoreID   int64 `json:"store_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Transaction is one day's sale of a product at a store. The unit price is
// back-filled from the product's current price when the caller omits it.
type Transaction struct {
	ID           int64     `json:"id"`
	StoreID      int64     `json:"store_id"`
	ProductID    int64     `json:"product_id"`
	Date         time.Time `json:"date"`
	QuantitySold int       `json:"quantity_sold"`
	UnitPrice    *float64  `json:"unit_price,omitempty"`
}

// ReorderPrediction is the persisted form of a reorder suggestion. One row per
// SKU; regenerating overwrites the previous value.
type ReorderPrediction struct {
	SKU          string    `json:"sku"`
	PredictedQty float64   `json:"predicted_qty"`
	ReorderQty   int       `json:"recommended_reorder_qty"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// LowStockAlert is one row of the low-stock report.
type LowStockAlert struct {
	SKU       string `json:"sku"`
	Product   string `json:"product"`
	Store     string `json:"store"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

// SalesTrendPoint is one day of aggregated sales for a SKU.
type SalesTrendPoint struct {
	Date      time.Time `json:"date"`
	TotalSold int       `json:"total_sold"`
}
