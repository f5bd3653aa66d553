package middleware

import (
	"crypto/subtle"
	"os"

	"github.com/gofiber/fiber/v2"
)

// AdminMiddleware gates moderation routes behind the configured admin
// password sent as X-Admin-Key. There are no sessions or tokens; every
// request carries the secret.
func AdminMiddleware(c *fiber.Ctx) error {
	adminKey := c.Get("X-Admin-Key")
	expectedKey := os.Getenv("ADMIN_PASSWORD")

	if expectedKey == "" {
		expectedKey = "dev-admin-secret"
	}

	if subtle.ConstantTimeCompare([]byte(adminKey), []byte(expectedKey)) != 1 {
		return c.Status(403).JSON(fiber.Map{"error": "Access denied: invalid admin key"})
	}

	return c.Next()
}
