package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"trenddrop/internal/config"
	"trenddrop/internal/server"
)

func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := server.Build(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize service", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Scheduled health monitor
	go app.HealthMonitor.Start(ctx)

	go func() {
		if err := app.Server.Start(); err != nil {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	cancel()
	if err := app.Server.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server exited")
}
