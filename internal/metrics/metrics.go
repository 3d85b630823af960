package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trenddrop/internal/models"
)

var (
	clicksDesc = prometheus.NewDesc(
		"trenddrop_clicks_total",
		"Total outbound product clicks by merchant host",
		[]string{"host"},
		nil,
	)

	reportsServed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trenddrop_reports_served_total",
		Help: "Product reports served by type, format and outcome",
	}, []string{"type", "format", "outcome"})

	artifactsIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trenddrop_artifact_links_total",
		Help: "Signed artifact links requested by kind and outcome",
	}, []string{"kind", "outcome"})

	listingOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trenddrop_listing_requests_total",
		Help: "Product listing requests by source outcome",
	}, []string{"outcome"})

	probeUp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trenddrop_health_probe_up",
		Help: "Result of the last health probe (1 ok, 0 failed)",
	}, []string{"probe"})

	alertsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trenddrop_alerts_total",
		Help: "Alert dispatches by outcome",
	}, []string{"outcome"})
)

// MaxClickHosts bounds the number of host series exported for clicks.
const MaxClickHosts = 50

// ClickSource reads aggregated click counts for at most limit hosts.
type ClickSource interface {
	ClickStats(ctx context.Context, limit int) ([]models.ClickStat, error)
}

// ClickCollector is a custom Prometheus collector that reads click counts
// from the database on each scrape.
type ClickCollector struct {
	src     ClickSource
	timeout time.Duration
}

// Describe sends the metric descriptor to the channel.
func (c *ClickCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- clicksDesc
}

// Collect queries the database for click counts and emits them as counters.
func (c *ClickCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stats, err := c.src.ClickStats(ctx, MaxClickHosts)
	if err != nil {
		slog.Error("failed to collect click metrics", "error", err)
		return
	}
	if len(stats) > MaxClickHosts {
		stats = stats[:MaxClickHosts]
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(clicksDesc, prometheus.CounterValue, float64(s.Count), s.Host)
	}
}

var initOnce sync.Once

// Init registers all collectors with the default registry. src may be nil
// when no database is available. Must be called once at startup.
func Init(src ClickSource) {
	initOnce.Do(func() {
		prometheus.MustRegister(reportsServed, artifactsIssued, listingOutcomes, probeUp, alertsSent)
		if src != nil {
			prometheus.MustRegister(&ClickCollector{src: src, timeout: 5 * time.Second})
		}
	})
}

func outcome(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// RecordReport counts a served product report. Labels are limited to the
// known types and formats; unknown types are counted as search, which is
// how they are dispatched.
func RecordReport(reportType, format string, ok bool) {
	reportsServed.WithLabelValues(reportTypeLabel(reportType), formatLabel(format), outcome(ok)).Inc()
}

func reportTypeLabel(reportType string) string {
	switch reportType {
	case models.ReportTop, models.ReportRecent:
		return reportType
	}
	return models.ReportSearch
}

func formatLabel(format string) string {
	if format == models.FormatCSV {
		return models.FormatCSV
	}
	return models.FormatJSON
}

// RecordArtifact counts a signed-link request. kind is "gated" or "latest";
// result is a short reason such as "ok" or "no entitlement".
func RecordArtifact(kind, result string) {
	artifactsIssued.WithLabelValues(kind, result).Inc()
}

// RecordListing counts a listing request by which source answered it.
func RecordListing(result string) {
	listingOutcomes.WithLabelValues(result).Inc()
}

// RecordProbe sets the last result of a named health probe.
func RecordProbe(probe string, ok bool) {
	v := 0.0
	if ok {
		v = 1
	}
	probeUp.WithLabelValues(probe).Set(v)
}

// RecordAlert counts an alert dispatch.
func RecordAlert(ok bool) {
	alertsSent.WithLabelValues(outcome(ok)).Inc()
}
