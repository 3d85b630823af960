package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/listing"
	"trenddrop/internal/metrics"
)

// ListingFetcher fetches the product listing.
type ListingFetcher interface {
	Fetch(ctx context.Context, limit int, category string) listing.Result
}

// ListingHandler serves /api-products.
type ListingHandler struct {
	strategy ListingFetcher
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(strategy ListingFetcher) *ListingHandler {
	return &ListingHandler{strategy: strategy}
}

// Products returns the top products, optionally filtered by category.
func (h *ListingHandler) Products(c fiber.Ctx) error {
	limit := listing.ParseLimit(c.Query("limit"))
	res := h.strategy.Fetch(c.Context(), limit, c.Query("category"))
	metrics.RecordListing(res.Outcome.String())

	switch res.Outcome {
	case listing.Primary:
		return c.JSON(fiber.Map{"ok": true, "data": res.Rows})
	case listing.Fallback:
		return c.JSON(fiber.Map{"ok": true, "data": res.Rows, "error": errText(res.Err)})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"ok":    false,
			"data":  res.Rows,
			"error": errText(errors.Join(res.Err, res.FallbackErr)),
		})
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
