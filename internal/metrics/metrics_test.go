package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"trenddrop/internal/models"
)

type fakeClicks struct {
	stats []models.ClickStat
	err   error
	limit int
}

func (f *fakeClicks) ClickStats(ctx context.Context, limit int) ([]models.ClickStat, error) {
	f.limit = limit
	return f.stats, f.err
}

func manyHosts(n int) []models.ClickStat {
	stats := make([]models.ClickStat, n)
	for i := range stats {
		stats[i] = models.ClickStat{Host: fmt.Sprintf("shop%d.example.com", i), Count: 1}
	}
	return stats
}

func collect(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()
	n := 0
	for range ch {
		n++
	}
	return n
}

func TestClickCollector(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeClicks
		want int
	}{
		{"two hosts", &fakeClicks{stats: []models.ClickStat{{Host: "ebay.com", Count: 3}, {Host: "amazon.com", Count: 1}}}, 2},
		{"empty", &fakeClicks{}, 0},
		{"store error emits nothing", &fakeClicks{err: errors.New("down")}, 0},
		{"capped at MaxClickHosts", &fakeClicks{stats: manyHosts(MaxClickHosts + 20)}, MaxClickHosts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ClickCollector{src: tt.src, timeout: time.Second}
			if got := collect(c); got != tt.want {
				t.Errorf("collected %d metrics, want %d", got, tt.want)
			}
			if tt.src.limit != MaxClickHosts {
				t.Errorf("ClickStats limit = %d, want %d", tt.src.limit, MaxClickHosts)
			}
		})
	}
}

func TestRecorders(t *testing.T) {
	reportsServed.Reset()
	probeUp.Reset()

	RecordProbe("storage", true)
	RecordProbe("storage", false)
	RecordAlert(true)
	RecordReport("top", "json", true)
	RecordArtifact("gated", "ok")
	RecordListing("primary")

	if got := collect(probeUp); got != 1 {
		t.Errorf("probe gauges = %d, want 1", got)
	}
	if got := collect(reportsServed); got != 1 {
		t.Errorf("report counters = %d, want 1", got)
	}
}

func TestRecordReport_Labels(t *testing.T) {
	reportsServed.Reset()

	RecordReport("junk", "json", true)
	RecordReport("another-junk", "xml", true)
	RecordReport("recent", "csv", false)

	if got := testutil.CollectAndCount(reportsServed); got != 2 {
		t.Errorf("report series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(reportsServed.WithLabelValues("search", "json", "ok")); got != 2 {
		t.Errorf("search/json/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(reportsServed.WithLabelValues("recent", "csv", "error")); got != 1 {
		t.Errorf("recent/csv/error = %v, want 1", got)
	}
}
