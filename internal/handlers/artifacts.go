package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"trenddrop/internal/entitlement"
	"trenddrop/internal/metrics"
	"trenddrop/internal/middleware"
	"trenddrop/internal/models"
)

// ArtifactGate issues gated artifact links to purchasers.
type ArtifactGate interface {
	Issue(ctx context.Context, email, product string) (*models.Artifact, error)
}

// LatestIssuer issues links to the latest report of a mode.
type LatestIssuer interface {
	IssueLatest(ctx context.Context, mode, format string) (*models.Artifact, error)
}

// ArtifactHandler serves signed report links.
type ArtifactHandler struct {
	gate   ArtifactGate
	issuer LatestIssuer
}

// NewArtifactHandler creates a new artifact handler.
func NewArtifactHandler(gate ArtifactGate, issuer LatestIssuer) *ArtifactHandler {
	return &ArtifactHandler{gate: gate, issuer: issuer}
}

// GetReport handles /get-report: checks the caller's entitlement and returns
// a one hour link to the newest artifact. Failures answer with a short
// plain-text reason.
func (h *ArtifactHandler) GetReport(c fiber.Ctx) error {
	artifact, err := h.gate.Issue(c.Context(), c.Query("email"), c.Query("product"))
	if err != nil {
		status, reason := gateFailure(err)
		metrics.RecordArtifact("gated", reason)
		return textError(c, status, reason)
	}

	metrics.RecordArtifact("gated", "ok")
	return c.JSON(fiber.Map{"url": artifact.URL})
}

func gateFailure(err error) (int, string) {
	var notEligible *entitlement.NotEligibleError
	switch {
	case errors.Is(err, entitlement.ErrMissingIdentity):
		return fiber.StatusBadRequest, entitlement.ErrMissingIdentity.Error()
	case errors.Is(err, entitlement.ErrInvalidProduct):
		return fiber.StatusBadRequest, entitlement.ErrInvalidProduct.Error()
	case errors.Is(err, entitlement.ErrNoEntitlement):
		return fiber.StatusForbidden, entitlement.ErrNoEntitlement.Error()
	case errors.As(err, &notEligible):
		return fiber.StatusForbidden, notEligible.Error()
	case errors.Is(err, entitlement.ErrNoArtifact):
		return fiber.StatusNotFound, entitlement.ErrNoArtifact.Error()
	case errors.Is(err, entitlement.ErrSignFailed):
		return fiber.StatusInternalServerError, entitlement.ErrSignFailed.Error()
	default:
		return fiber.StatusInternalServerError, entitlement.ErrInternal.Error()
	}
}

type reportLinkRequest struct {
	Mode   string `json:"mode"`
	Format string `json:"format"`
}

// ReportLinks handles POST /report-links: signs the latest artifact of a
// report mode for 24 hours. An unreadable body falls back to the defaults.
//
// It must be mounted behind middleware.RequireCredential.
func (h *ArtifactHandler) ReportLinks(c fiber.Ctx) error {
	cred := middleware.GetCredential(c)
	if cred == nil {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req reportLinkRequest
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			slog.Debug("report-links body ignored", "error", err)
			req = reportLinkRequest{}
		}
	}

	artifact, err := h.issuer.IssueLatest(c.Context(), req.Mode, req.Format)
	if err != nil {
		if errors.Is(err, entitlement.ErrInvalidMode) {
			metrics.RecordArtifact("latest", "invalid mode")
			return jsonError(c, fiber.StatusBadRequest, err.Error())
		}
		metrics.RecordArtifact("latest", "sign failed")
		slog.Error("report link signing failed", "mode", req.Mode, "error", err)
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	metrics.RecordArtifact("latest", "ok")
	slog.Info("report link issued", "key", artifact.Key, "scheme", cred.Scheme, "ip", c.IP())
	return c.JSON(fiber.Map{
		"ok":  true,
		"url": artifact.URL,
		"key": artifact.Key,
	})
}
