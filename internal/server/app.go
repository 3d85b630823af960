package server

import (
	"context"
	"fmt"
	"log/slog"

	"trenddrop/internal/alert"
	"trenddrop/internal/blob"
	"trenddrop/internal/config"
	"trenddrop/internal/db"
	"trenddrop/internal/entitlement"
	"trenddrop/internal/handlers"
	"trenddrop/internal/jobs"
	"trenddrop/internal/listing"
	"trenddrop/internal/metrics"
	"trenddrop/internal/monitor"
	"trenddrop/internal/report"
	"trenddrop/internal/telegram"
)

// App is a fully wired service: the HTTP server, its health job and the
// resources to release on shutdown.
type App struct {
	Server        *Server
	HealthMonitor *jobs.HealthMonitor
	DB            *db.DB
}

// Close releases the database pool.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Build connects to the store and blob backends and wires every handler.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	database.QueryTimeout = cfg.StoreTimeout

	blobs, err := blob.NewGCS(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	catalog, err := config.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("catalog %s: %w", cfg.CatalogFile, err)
	}

	metrics.Init(database)

	tg := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramAPIURL)
	alerts := alert.FromConfig(cfg, tg)
	mon := monitor.New(blobs, alerts, cfg)

	var invites handlers.InviteLinkCreator
	if tg.Configured() {
		invites = tg
	}

	srv := New(cfg)
	srv.RegisterRoutes(Handlers{
		Report:   handlers.NewReportHandler(report.NewEngine(database)),
		Artifact: handlers.NewArtifactHandler(entitlement.NewGate(database, blobs, catalog, cfg), entitlement.NewIssuer(blobs, cfg)),
		Health:   handlers.NewHealthHandler(mon),
		Listing:  handlers.NewListingHandler(listing.NewStrategy(database)),
		Invite:   handlers.NewInviteHandler(database, invites, cfg.TelegramCommunityChatID),
		Click:    handlers.NewClickHandler(database),
		Probe:    handlers.NewProbeHandler(database),
	})

	slog.Info("service wired",
		"reports_bucket", cfg.ReportsBucket,
		"gated_bucket", cfg.GatedReportsBucket,
		"catalog_products", len(catalog.Products),
		"telegram", tg.Configured(),
		"email", cfg.IsEmailEnabled())

	return &App{
		Server:        srv,
		HealthMonitor: jobs.NewHealthMonitor(mon, cfg.HealthInterval),
		DB:            database,
	}, nil
}
