// Package monitor probes the blob store and the products-report endpoint and
// raises an alert when either is unhealthy.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"trenddrop/internal/alert"
	"trenddrop/internal/config"
	"trenddrop/internal/metrics"
	"trenddrop/internal/models"
)

// StorageProbeTTL is the lifetime of the URL minted by the storage probe.
const StorageProbeTTL = 60 * time.Second

// Signer mints signed URLs; blob.Store satisfies it.
type Signer interface {
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

var errNotConfigured = errors.New("report endpoint not configured")

// Monitor runs the two dependency probes.
type Monitor struct {
	signer    Signer
	alerter   alert.Alerter
	client    *http.Client
	bucket    string
	probeKey  string
	reportURL string
	hasKey    bool
	timeout   time.Duration
}

// New creates a Monitor. The report probe authenticates with the service
// key as a static bearer token.
func New(signer Signer, alerter alert.Alerter, cfg *config.Config) *Monitor {
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ServiceRoleKey, TokenType: "Bearer"})
	client := oauth2.NewClient(context.Background(), ts)
	client.Timeout = timeout

	return &Monitor{
		signer:    signer,
		alerter:   alerter,
		client:    client,
		bucket:    cfg.ReportsBucket,
		probeKey:  cfg.HealthProbeKey,
		reportURL: cfg.ReportURL,
		hasKey:    cfg.ServiceRoleKey != "",
		timeout:   timeout,
	}
}

// Run probes both dependencies concurrently and alerts once if either fails.
// Alert failures are logged, never returned.
func (m *Monitor) Run(ctx context.Context) models.HealthReport {
	var report models.HealthReport
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Storage = m.probeStorage(ctx)
	}()
	go func() {
		defer wg.Done()
		report.ProductsReport = m.probeReport(ctx)
	}()
	wg.Wait()

	report.OK = report.Storage.OK && report.ProductsReport.OK
	metrics.RecordProbe("storage", report.Storage.OK)
	metrics.RecordProbe("products_report", report.ProductsReport.OK)

	if !report.OK {
		slog.Warn("health check failed",
			"storage", report.Storage.OK, "storage_error", report.Storage.Error,
			"products_report", report.ProductsReport.OK, "status", report.ProductsReport.Status)

		if m.alerter != nil {
			if err := m.alerter.Send(ctx, FailureMessage(report)); err != nil {
				slog.Error("failed to send health alert", "error", err)
			}
		}
	}

	return report
}

// FailureMessage is the alert text for a failed report.
func FailureMessage(r models.HealthReport) string {
	return fmt.Sprintf("⚠️ Health check failed: storage=%t products-report=%t", r.Storage.OK, r.ProductsReport.OK)
}

func (m *Monitor) probeStorage(ctx context.Context) models.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	url, err := m.signer.SignedURL(ctx, m.bucket, m.probeKey, StorageProbeTTL)
	if err != nil {
		return models.ProbeResult{OK: false, Error: err.Error()}
	}
	return models.ProbeResult{OK: url != ""}
}

func (m *Monitor) probeReport(ctx context.Context) models.ProbeResult {
	if m.reportURL == "" || !m.hasKey {
		slog.Debug("products-report probe skipped", "error", errNotConfigured)
		return models.ProbeResult{OK: false}
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.reportURL, nil)
	if err != nil {
		return models.ProbeResult{OK: false}
	}
	req.Header.Set("User-Agent", "TrendDrop-HealthMonitor/1.0")

	resp, err := m.client.Do(req)
	if err != nil {
		slog.Debug("products-report probe failed", "error", err)
		return models.ProbeResult{OK: false}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return models.ProbeResult{OK: ok, Status: resp.StatusCode}
}
