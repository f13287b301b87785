// Package metrics exports sync pipeline metrics to Prometheus.
package metrics

import (
	"time"

	"pawsync/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "pawsync"

// NewRegistry creates the registry served on /metrics, with runtime collectors attached.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// SyncMetrics records sync outcomes. A zero value or nil receiver records nothing.
type SyncMetrics struct {
	dropped  *prometheus.CounterVec
	writes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewSyncMetrics registers the sync metrics on the provided registry.
func NewSyncMetrics(reg *prometheus.Registry) service.SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_dropped_total",
		Help:      "Remote documents dropped because they could not be mapped.",
	}, []string{"kind"})
	writes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_writes_total",
		Help:      "Remote write attempts by operation and outcome.",
	}, []string{"kind", "operation", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_pass_duration_seconds",
		Help:      "Duration of pending sync passes in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(dropped, writes, duration)

	return &SyncMetrics{
		dropped:  dropped,
		writes:   writes,
		duration: duration,
	}
}

// DocumentDropped counts a remote document the mapper rejected.
func (m *SyncMetrics) DocumentDropped(kind string) {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.WithLabelValues(normalizeLabel(kind)).Inc()
}

// RemoteWrite counts a remote write outcome.
func (m *SyncMetrics) RemoteWrite(kind string, op service.SyncOperation, outcome service.SyncOutcome) {
	if m == nil || m.writes == nil {
		return
	}
	m.writes.WithLabelValues(normalizeLabel(kind), normalizeLabel(string(op)), normalizeLabel(string(outcome))).Inc()
}

// ObserveSyncPass records the duration of a pending-sync pass.
func (m *SyncMetrics) ObserveSyncPass(kind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}

	return value
}
