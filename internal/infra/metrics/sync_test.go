package metrics

import (
	"fmt"
	"testing"
	"time"

	"pawsync/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSyncMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewSyncMetrics(reg)

	metrics.DocumentDropped("favorites")
	metrics.DocumentDropped("favorites")
	metrics.RemoteWrite("walks", service.SyncOperationCreate, service.SyncOutcomeLocalOnly)
	metrics.ObserveSyncPass("walks", 150*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "pawsync_documents_dropped_total", "kind", "favorites"); err != nil {
		t.Fatalf("fetch dropped: %v", err)
	} else if got != 2 {
		t.Fatalf("expected dropped=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "pawsync_remote_writes_total", "outcome", "local_only"); err != nil {
		t.Fatalf("fetch writes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected writes=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "pawsync_sync_pass_duration_seconds", "kind", "walks"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestSyncMetricsNilSafe(t *testing.T) {
	var nilMetrics *SyncMetrics
	nilMetrics.DocumentDropped("favorites")
	nilMetrics.RemoteWrite("favorites", service.SyncOperationDelete, service.SyncOutcomeFailed)
	nilMetrics.ObserveSyncPass("favorites", time.Second)

	unregistered := NewSyncMetrics(nil)
	unregistered.DocumentDropped("favorites")
}

func TestNewRegistryIncludesRuntimeCollectors(t *testing.T) {
	mfs, err := NewRegistry().Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if findMetricFamily(mfs, "go_goroutines") == nil {
		t.Fatal("expected go_goroutines to be exported")
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}

	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}

	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}

	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}

	return false
}
