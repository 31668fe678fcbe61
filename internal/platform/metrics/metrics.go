package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the declaration pipeline.
type Metrics struct {
	DeclarationsUpdated prometheus.Counter
	DeclarationFailures *prometheus.CounterVec
	PublishFailures     prometheus.Counter
	StoreFailures       prometheus.Counter
	PipelineDuration    prometheus.Histogram
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		DeclarationsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pepgate_declarations_updated_total",
			Help: "Total number of PEP declarations successfully recorded",
		}),
		DeclarationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pepgate_declaration_failures_total",
			Help: "Pipeline failures by error code",
		}, []string{"code"}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pepgate_event_publish_failures_total",
			Help: "Event log publishes that did not ack",
		}),
		StoreFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pepgate_store_update_failures_total",
			Help: "User store updates that failed after a successful publish",
		}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pepgate_pipeline_duration_seconds",
			Help:    "End-to-end latency of the declaration update pipeline",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncFailure records a pipeline failure under its error code.
func (m *Metrics) IncFailure(code string) {
	m.DeclarationFailures.WithLabelValues(code).Inc()
}
