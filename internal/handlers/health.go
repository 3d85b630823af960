package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/models"
)

// HealthRunner runs one monitor pass.
type HealthRunner interface {
	Run(ctx context.Context) models.HealthReport
}

// HealthHandler serves /health-ping.
type HealthHandler struct {
	monitor HealthRunner
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(monitor HealthRunner) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// Ping runs the dependency probes on demand. 200 when all pass, else 500.
func (h *HealthHandler) Ping(c fiber.Ctx) error {
	report := h.monitor.Run(c.Context())

	status := fiber.StatusOK
	if !report.OK {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(report)
}
