package middleware

import (
	"fmt"
	"strings"

	"smartstock/config"
	"smartstock/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": msg})
}

// bearerToken extracts the raw token from an Authorization header.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// Authenticate verifies the request's JWT and stores the user's id and role
// in the request locals.
func Authenticate(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return unauthorized(c, "Missing authorization header")
	}

	raw, ok := bearerToken(header)
	if !ok {
		return unauthorized(c, "Invalid token format")
	}

	claims := &models.JwtClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return unauthorized(c, "Invalid or expired token")
	}

	c.Locals("userID", claims.UserID)
	c.Locals("userRole", claims.Role)
	return c.Next()
}

// CheckRole allows the request through only when the authenticated user has
// one of the given roles.
func CheckRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Role not found in token"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"status": "error", "message": "Insufficient permissions"})
	}
}

// ManagerRequired restricts a route to managers. Staff keep read-only access
// elsewhere; every mutating route goes through this.
var ManagerRequired = CheckRole("manager")
