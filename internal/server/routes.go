package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trenddrop/internal/handlers"
	"trenddrop/internal/middleware"
)

// Handlers groups the request handlers mounted by RegisterRoutes.
type Handlers struct {
	Report   *handlers.ReportHandler
	Artifact *handlers.ArtifactHandler
	Health   *handlers.HealthHandler
	Listing  *handlers.ListingHandler
	Invite   *handlers.InviteHandler
	Click    *handlers.ClickHandler
	Probe    *handlers.ProbeHandler
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(h Handlers) {
	// Kubernetes probes and metrics
	s.App.Get("/healthz", h.Probe.Liveness)
	s.App.Get("/readyz", h.Probe.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public routes
	s.App.Get("/products-report", h.Report.Products)
	s.App.Get("/get-report", h.Artifact.GetReport)
	s.App.Get("/health-ping", h.Health.Ping)
	s.App.Get("/click-redirect", h.Click.Redirect)
	s.App.All("/create-telegram-invite", middleware.AllowMethods(fiber.MethodPost), h.Invite.Create)

	// Credential required
	s.App.Get("/api-products", middleware.RequireCredential, h.Listing.Products)
	s.App.All("/report-links", middleware.AllowMethods(fiber.MethodPost), middleware.RequireCredential, h.Artifact.ReportLinks)
}
