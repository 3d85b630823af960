package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// AllowMethods answers 405 with a plain-text body for any method not listed.
// Routes registered with app.All use it so the method is rejected before any
// credential check runs.
func AllowMethods(methods ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !slices.Contains(methods, c.Method()) {
			c.Set(fiber.HeaderAllow, strings.Join(methods, ", "))
			return c.Status(fiber.StatusMethodNotAllowed).SendString("Method Not Allowed")
		}
		return c.Next()
	}
}
