package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// jsonError returns an {ok:false,error} body with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"ok":    false,
		"error": message,
	})
}

// textError returns a plain-text reason with the given HTTP status code.
func textError(c fiber.Ctx, status int, reason string) error {
	return c.Status(status).SendString(reason)
}
