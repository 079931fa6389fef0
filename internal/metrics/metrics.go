// Package metrics records subprocess activity as Prometheus metrics and can
// dump them in the node-exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/masmgr/githistory-go/internal/cmdexec"
)

const namespace = "githistory"

// Recorder implements cmdexec.Observer.
type Recorder struct {
	registry *prometheus.Registry

	commands *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the command metrics on registry. A nil registry gets
// a fresh one.
func NewRecorder(registry *prometheus.Registry) *Recorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &Recorder{
		registry: registry,
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "External commands run, by command label and outcome.",
			},
			[]string{"command", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Wall time of external commands.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120, 300},
			},
			[]string{"command"},
		),
	}

	registry.MustRegister(r.commands, r.duration)
	return r
}

// Registry returns the registry the recorder writes to.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveCommand implements cmdexec.Observer.
func (r *Recorder) ObserveCommand(label string, outcome cmdexec.Outcome, elapsed time.Duration) {
	r.commands.WithLabelValues(label, string(outcome)).Inc()
	r.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// WriteTextfile writes every registered metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

var _ cmdexec.Observer = (*Recorder)(nil)
