// Package report resolves report requests into product row sets.
package report

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"trenddrop/internal/models"
)

// Store is the read side of the product data used by the engine.
type Store interface {
	TopByFeedback(ctx context.Context, limit int) ([]models.ProductRow, error)
	Recent7d(ctx context.Context, limit int) ([]models.ProductRow, error)
	SearchProducts(ctx context.Context, params models.SearchParams) ([]models.ProductRow, error)
}

// Engine dispatches report requests to views or the search function.
type Engine struct {
	store Store
}

// NewEngine creates a new report engine.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Run executes the request and returns rows in store order.
//
// top reads the top-by-feedback view. recent reads the seven day view when
// the window is exactly the default and otherwise searches with an empty
// query and no feedback floor. Every other type searches with the caller's
// filters.
func (e *Engine) Run(ctx context.Context, req models.ReportRequest) ([]models.ProductRow, error) {
	limit := ClampLimit(req.Limit)

	var (
		rows []models.ProductRow
		err  error
	)
	switch req.Type {
	case models.ReportTop:
		rows, err = e.store.TopByFeedback(ctx, limit)
	case models.ReportRecent:
		if req.Days == models.DefaultRecentDays {
			rows, err = e.store.Recent7d(ctx, limit)
		} else {
			rows, err = e.store.SearchProducts(ctx, models.SearchParams{
				Query:       "",
				MinFeedback: 0,
				Days:        max(req.Days, 0),
				MaxRows:     limit,
			})
		}
	default:
		rows, err = e.store.SearchProducts(ctx, models.SearchParams{
			Query:       req.Query,
			MinFeedback: max(req.MinFeedback, 0),
			Days:        max(req.Days, 0),
			MaxRows:     limit,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%s report: %w", req.Type, err)
	}
	if rows == nil {
		rows = []models.ProductRow{}
	}
	return rows, nil
}

// ParseRequest builds a clamped ReportRequest from query parameters.
// get returns the raw value of a parameter, or "" when absent.
func ParseRequest(get func(key string) string) models.ReportRequest {
	typ := strings.ToLower(strings.TrimSpace(get("type")))
	if typ == "" {
		typ = models.ReportTop
	}

	format := strings.ToLower(strings.TrimSpace(get("format")))
	if format != models.FormatCSV {
		format = models.FormatJSON
	}

	defaultDays := 0
	if typ == models.ReportRecent {
		defaultDays = models.DefaultRecentDays
	}

	return models.ReportRequest{
		Type:        typ,
		Format:      format,
		Query:       get("q"),
		MinFeedback: parseNonNegativeFloat(get("min_feedback"), 0),
		Days:        parseNonNegativeInt(get("days"), defaultDays),
		Limit:       ClampLimit(parseInt(get("limit"), models.DefaultReportLimit)),
	}
}

// ClampLimit bounds a row limit to [1, MaxReportLimit].
func ClampLimit(limit int) int {
	return min(max(limit, 1), models.MaxReportLimit)
}

func parseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseNonNegativeFloat(raw string, fallback float64) float64 {
	v, ok := parseFloat(raw)
	if !ok {
		return fallback
	}
	return max(v, 0)
}

func parseInt(raw string, fallback int) int {
	v, ok := parseFloat(raw)
	if !ok {
		return fallback
	}
	// avoid overflow on absurd inputs; callers clamp afterwards
	v = math.Max(math.Min(math.Trunc(v), math.MaxInt32), math.MinInt32)
	return int(v)
}

func parseNonNegativeInt(raw string, fallback int) int {
	return max(parseInt(raw, fallback), 0)
}
