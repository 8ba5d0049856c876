package handlers

import (
	"net/http/httptest"
	"testing"

	"smartstock/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestPredictRouteRequiresAuth(t *testing.T) {
	app := fiber.New()
	group := app.Group("/api/v1/forecast", middleware.Authenticate)
	group.Get("/predict", HandlePredictSKU)

	req := httptest.NewRequest("GET", "/api/v1/forecast/predict?sku=A", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestHandlePredictSKURequiresSKU(t *testing.T) {
	app := fiber.New()
	app.Get("/predict", HandlePredictSKU)

	req := httptest.NewRequest("GET", "/predict", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleReorderTrendMissingFile(t *testing.T) {
	app := fiber.New()
	app.Get("/reorder-trend", HandleReorderTrend)

	req := httptest.NewRequest("GET", "/reorder-trend", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
