package pipeline

import (
	"time"

	"github.com/c360studio/semstreams/metric"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for pipeline operations.
type Metrics struct {
	documentsTotal *prometheus.CounterVec // By status (ok/error)
	triplesTotal   prometheus.Counter
	ingestDuration prometheus.Histogram

	validationsTotal   *prometheus.CounterVec // By status (PASSED/WARNING/FAILED/error)
	validationDuration prometheus.Histogram
	droppedLines       prometheus.Counter
	schemaFallbacks    prometheus.Counter
}

// NewMetrics creates and registers pipeline metrics with the provided
// registry. A nil registry disables metrics.
func NewMetrics(registry *metric.MetricsRegistry) (*Metrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &Metrics{
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total number of documents ingested",
		}, []string{"status"}),

		triplesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "triples_total",
			Help:      "Total number of triples generated",
		}),

		ingestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "ingest_duration_seconds",
			Help:      "Document ingestion duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}),

		validationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "validations_total",
			Help:      "Total number of validation runs by outcome",
		}, []string{"status"}),

		validationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "validation_duration_seconds",
			Help:      "Validation duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}),

		droppedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "dropped_statements_total",
			Help:      "Total number of staged graph statements dropped during parsing",
		}),

		schemaFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "docgraph",
			Subsystem: "pipeline",
			Name:      "schema_fallbacks_total",
			Help:      "Total number of validations run against the empty schema after a fetch failure",
		}),
	}

	// Register all metrics
	if err := registry.RegisterCounterVec("pipeline", "documents_total", m.documentsTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("pipeline", "triples_total", m.triplesTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram("pipeline", "ingest_duration", m.ingestDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("pipeline", "validations_total", m.validationsTotal); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogram("pipeline", "validation_duration", m.validationDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("pipeline", "dropped_statements", m.droppedLines); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("pipeline", "schema_fallbacks", m.schemaFallbacks); err != nil {
		return nil, err
	}

	return m, nil
}

// recordIngest records an ingestion run.
func (m *Metrics) recordIngest(ok bool, triples int, duration time.Duration) {
	if m == nil {
		return
	}

	status := "error"
	if ok {
		status = "ok"
		m.triplesTotal.Add(float64(triples))
	}
	m.documentsTotal.WithLabelValues(status).Inc()
	m.ingestDuration.Observe(duration.Seconds())
}

// recordValidation records a validation run by outcome.
func (m *Metrics) recordValidation(status string, duration time.Duration) {
	if m == nil {
		return
	}

	m.validationsTotal.WithLabelValues(status).Inc()
	m.validationDuration.Observe(duration.Seconds())
}

// recordDroppedLines records statements dropped by the restricted parser.
func (m *Metrics) recordDroppedLines(n int) {
	if m == nil {
		return
	}
	m.droppedLines.Add(float64(n))
}

// recordSchemaFallback records a validation that fell back to the empty schema.
func (m *Metrics) recordSchemaFallback() {
	if m == nil {
		return
	}
	m.schemaFallbacks.Inc()
}
