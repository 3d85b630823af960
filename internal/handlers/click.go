package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/validation"
)

// ClickRecorder logs outbound product clicks.
type ClickRecorder interface {
	RecordClick(ctx context.Context, productURL string) error
}

// ClickHandler serves /click-redirect.
type ClickHandler struct {
	store ClickRecorder
}

// NewClickHandler creates a new click handler.
func NewClickHandler(store ClickRecorder) *ClickHandler {
	return &ClickHandler{store: store}
}

// Redirect records the click and redirects to the product URL. A failed
// insert is logged and the redirect still happens.
func (h *ClickHandler) Redirect(c fiber.Ctx) error {
	target := c.Query("url")
	if target == "" {
		return textError(c, fiber.StatusBadRequest, "missing url")
	}
	if ok, msg := validation.ValidateURL(target); !ok {
		return textError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.store.RecordClick(c.Context(), target); err != nil {
		slog.Warn("failed to record click", "error", err)
	}

	return c.Redirect().Status(fiber.StatusFound).To(target)
}
