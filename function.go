// Package function exposes the service as a Google Cloud Functions (Gen2)
// HTTP entry point. The scheduled health job does not run here; schedule
// /health-ping with Cloud Scheduler instead.
package function

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"trenddrop/internal/config"
	"trenddrop/internal/server"
)

var (
	handler  http.Handler
	initErr  error
	initOnce sync.Once
)

func init() {
	functions.HTTP("TrendDrop", TrendDrop)
}

func setup() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	app, err := server.Build(context.Background(), cfg)
	if err != nil {
		initErr = err
		slog.Error("failed to initialize function", "error", err)
		return
	}
	handler = adaptor.FiberApp(app.Server.App)
}

// TrendDrop is the HTTP Cloud Function entry point. Dependencies are wired
// on the first request and reused by the warm instance.
func TrendDrop(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)
	if initErr != nil {
		http.Error(w, "service not initialized", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}
