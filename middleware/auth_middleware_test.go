package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// Helper to create an app with a pre-local middleware that sets userRole
func makeAppWithRole(role string, check fiber.Handler) *fiber.App {
	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userRole", role)
		return c.Next()
	})

	app.Use(check)

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(200).SendString("ok")
	})

	return app
}

func TestManagerRequired_AllowsManager(t *testing.T) {
	app := makeAppWithRole("manager", ManagerRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 for manager role, got %d", resp.StatusCode)
	}
}

func TestManagerRequired_DeniesStaff(t *testing.T) {
	app := makeAppWithRole("staff", ManagerRequired)
	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 for staff role, got %d", resp.StatusCode)
	}
}

func TestCheckRole_MissingRole(t *testing.T) {
	app := fiber.New()
	app.Use(CheckRole("manager"))
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Fatalf("expected 403 when no role is set, got %d", resp.StatusCode)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	app := fiber.New()
	app.Use(Authenticate)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 without Authorization header, got %d", resp.StatusCode)
	}
}

func TestAuthenticate_BadTokenFormat(t *testing.T) {
	app := fiber.New()
	app.Use(Authenticate)
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test error: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("expected 401 for malformed header, got %d", resp.StatusCode)
	}
}
