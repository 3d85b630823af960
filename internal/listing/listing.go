// Package listing serves the curated product listing with a fallback to the
// raw products table when the curated view cannot be read.
package listing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"trenddrop/internal/models"
)

// Listing limits.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Outcome tags which path produced a listing result.
type Outcome int

const (
	// Primary means the curated view answered.
	Primary Outcome = iota
	// Fallback means the view failed and the products table answered.
	Fallback
	// Failed means both paths failed.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return "failed"
	}
}

// Result is the tagged outcome of a listing fetch. Err holds the primary
// failure for Fallback and Failed; FallbackErr holds the second failure.
type Result struct {
	Outcome     Outcome
	Rows        []models.Record
	Err         error
	FallbackErr error
}

// Store is the product data used by the listing.
type Store interface {
	ListTopProducts(ctx context.Context, limit int, category string) ([]models.Record, error)
	ListProductsByCategory(ctx context.Context, limit int, category string) ([]models.Record, error)
}

// Strategy tries the curated view first and the products table second.
type Strategy struct {
	store Store
}

// NewStrategy creates a new listing strategy.
func NewStrategy(store Store) *Strategy {
	return &Strategy{store: store}
}

// Fetch returns up to limit rows. The fallback filters by category exactly,
// so an absent category only matches rows with an empty category.
func (s *Strategy) Fetch(ctx context.Context, limit int, category string) Result {
	limit = ClampLimit(limit)

	rows, err := s.store.ListTopProducts(ctx, limit, category)
	if err == nil {
		return Result{Outcome: Primary, Rows: nonNil(rows)}
	}

	slog.Warn("top products view failed, falling back to products table", "category", category, "error", err)

	fallback, fbErr := s.store.ListProductsByCategory(ctx, limit, category)
	if fbErr != nil {
		slog.Error("products fallback failed", "category", category, "error", fbErr)
		return Result{Outcome: Failed, Rows: []models.Record{}, Err: err, FallbackErr: fbErr}
	}
	return Result{Outcome: Fallback, Rows: nonNil(fallback), Err: err}
}

// ParseLimit reads a raw limit parameter: absent or non-numeric values use
// the default, anything else is clamped to [1, MaxLimit].
func ParseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return DefaultLimit
	}
	if v > MaxLimit {
		return MaxLimit
	}
	if v < 1 {
		return 1
	}
	return ClampLimit(int(v))
}

// ClampLimit bounds limit to [1, MaxLimit].
func ClampLimit(limit int) int {
	return min(max(limit, 1), MaxLimit)
}

func nonNil(rows []models.Record) []models.Record {
	if rows == nil {
		return []models.Record{}
	}
	return rows
}
