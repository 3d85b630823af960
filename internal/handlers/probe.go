package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	db Pinger
}

// NewProbeHandler creates a new probe handler. db may be nil when the
// service runs without a database.
func NewProbeHandler(db Pinger) *ProbeHandler {
	return &ProbeHandler{db: db}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint: 200 once the database answers.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.db == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database not configured",
		})
	}
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
