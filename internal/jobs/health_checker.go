package jobs

import (
	"context"
	"log/slog"
	"time"

	"trenddrop/internal/models"
)

// Runner performs one health pass.
type Runner interface {
	Run(ctx context.Context) models.HealthReport
}

// HealthMonitor runs the health monitor on a fixed interval.
type HealthMonitor struct {
	runner   Runner
	interval time.Duration
}

// NewHealthMonitor creates a new periodic health monitor.
func NewHealthMonitor(runner Runner, interval time.Duration) *HealthMonitor {
	return &HealthMonitor{runner: runner, interval: interval}
}

// Enabled reports whether a positive interval is configured.
func (h *HealthMonitor) Enabled() bool {
	return h.interval > 0
}

// Start runs a pass immediately and then on every tick until ctx is done.
// It returns at once when the job is disabled.
func (h *HealthMonitor) Start(ctx context.Context) {
	if !h.Enabled() {
		slog.Info("health monitor disabled")
		return
	}
	slog.Info("health monitor started", "interval", h.interval)

	h.check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("health monitor stopped")
			return
		case <-ticker.C:
			h.check(ctx)
		}
	}
}

func (h *HealthMonitor) check(ctx context.Context) {
	report := h.runner.Run(ctx)
	if report.OK {
		slog.Debug("health check passed")
	}
}
