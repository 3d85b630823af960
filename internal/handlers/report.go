package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/metrics"
	"trenddrop/internal/models"
	"trenddrop/internal/render"
	"trenddrop/internal/report"
)

// ReportRunner executes a parsed report request.
type ReportRunner interface {
	Run(ctx context.Context, req models.ReportRequest) ([]models.ProductRow, error)
}

// ReportHandler serves /products-report.
type ReportHandler struct {
	engine ReportRunner
}

// NewReportHandler creates a new report handler.
func NewReportHandler(engine ReportRunner) *ReportHandler {
	return &ReportHandler{engine: engine}
}

// Products runs the report named by the query string and renders it as
// pretty JSON or CSV.
func (h *ReportHandler) Products(c fiber.Ctx) error {
	req := report.ParseRequest(func(key string) string { return c.Query(key) })

	rows, err := h.engine.Run(c.Context(), req)
	if err != nil {
		metrics.RecordReport(req.Type, req.Format, false)
		slog.Error("report query failed", "type", req.Type, "format", req.Format, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	metrics.RecordReport(req.Type, req.Format, true)

	if req.Format == models.FormatCSV {
		c.Set(fiber.HeaderContentType, render.ContentTypeCSV)
		c.Set(fiber.HeaderCacheControl, render.CacheControlCSV)
		return c.SendString(render.CSV(render.ProductRecords(rows)))
	}

	body, err := render.JSON(rows)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, render.ContentTypeJSON)
	c.Set(fiber.HeaderCacheControl, render.CacheControlJSON)
	return c.Send(body)
}
