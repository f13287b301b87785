package metrics

import (
	"pawsync/internal/infra/task"

	"github.com/prometheus/client_golang/prometheus"
)

// RegisterTaskMetrics counts finished background tasks by name and final state.
func RegisterTaskMetrics(reg *prometheus.Registry, runner *task.Runner) {
	finished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_finished_total",
		Help:      "Background tasks finished, by task name and final state.",
	}, []string{"name", "state"})
	reg.MustRegister(finished)

	runner.OnComplete(func(t *task.Task) {
		finished.WithLabelValues(normalizeLabel(t.Name()), string(t.State())).Inc()
	})
}
