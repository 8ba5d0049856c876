package routes

import (
	"smartstock/handlers"
	"smartstock/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
// Staff get read access everywhere; every mutating route requires a manager.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Products ---
	products := api.Group("/products", middleware.Authenticate)
	products.Get("/", handlers.HandleListProducts)
	products.Get("/:productId", handlers.HandleGetProduct)
	products.Post("/", middleware.ManagerRequired, handlers.HandleCreateProduct)
	products.Put("/:productId", middleware.ManagerRequired, handlers.HandleUpdateProduct)
	products.Delete("/:productId", middleware.ManagerRequired, handlers.HandleDeleteProduct)

	// --- Stores ---
	stores := api.Group("/stores", middleware.Authenticate)
	stores.Get("/", handlers.HandleListStores)
	stores.Get("/:storeId", handlers.HandleGetStore)
	stores.Post("/", middleware.ManagerRequired, handlers.HandleCreateStore)
	stores.Put("/:storeId", middleware.ManagerRequired, handlers.HandleUpdateStore)
	stores.Delete("/:storeId", middleware.ManagerRequired, handlers.HandleDeleteStore)

	// --- Stock ---
	stock := api.Group("/stock", middleware.Authenticate)
	stock.Get("/reorder-suggestions", handlers.HandleReorderSuggestions) // Must be before /:id style routes
	stock.Get("/", handlers.HandleListStock)
	stock.Put("/", middleware.ManagerRequired, handlers.HandleUpsertStock)
	stock.Post("/adjust", middleware.ManagerRequired, handlers.HandleAdjustStock)

	// --- Transactions ---
	transactions := api.Group("/transactions", middleware.Authenticate)
	transactions.Get("/", handlers.HandleListTransactions)
	transactions.Post("/", middleware.ManagerRequired, handlers.HandleCreateTransaction)

	// --- Forecasting ---
	forecastGroup := api.Group("/forecast", middleware.Authenticate)
	forecastGroup.Get("/predict", handlers.HandlePredictSKU)
	forecastGroup.Post("/retrain", middleware.ManagerRequired, handlers.HandleRetrainModels)
	forecastGroup.Get("/reorder-predictions", handlers.HandleReorderPredictions)
	forecastGroup.Get("/reorder-trend", handlers.HandleReorderTrend)

	// --- Analytics ---
	analytics := api.Group("/analytics", middleware.Authenticate)
	analytics.Get("/sales-trend/:sku", handlers.HandleSalesTrend)
	analytics.Get("/dashboard/summary", handlers.HandleDashboardSummary)
	analytics.Get("/low-stock-alerts", handlers.HandleLowStockAlerts)

	// --- AI Routes ---
	ai := api.Group("/ai", middleware.Authenticate)
	ai.Post("/insights", handlers.HandleForecastInsights)
}
