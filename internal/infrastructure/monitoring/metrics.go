// Package monitoring exposes Prometheus metrics for the loading and
// parsing pipeline. The DOM surface itself is silent; only the
// document session and the transport are instrumented.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's Prometheus instruments.
type Metrics struct {
	// Load pipeline
	LoadsTotal   *prometheus.CounterVec
	LoadDuration *prometheus.HistogramVec

	// Transport
	FetchesTotal *prometheus.CounterVec

	// Parser
	ParsesTotal *prometheus.CounterVec

	// Session
	DocumentsInstalled prometheus.Counter
	ActiveGeneration   prometheus.Gauge
}

// New creates metrics registered on the given registerer. A nil
// registerer uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		LoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_loads_total",
			Help: "Document loads by outcome",
		}, []string{"outcome"}),
		LoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lumen_load_duration_seconds",
			Help:    "Document load latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_fetches_total",
			Help: "Transport fetches by outcome",
		}, []string{"outcome"}),
		ParsesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lumen_parses_total",
			Help: "Parse attempts by media type and outcome",
		}, []string{"media_type", "outcome"}),
		DocumentsInstalled: factory.NewCounter(prometheus.CounterOpts{
			Name: "lumen_documents_installed_total",
			Help: "Document generations committed to a session",
		}),
		ActiveGeneration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lumen_active_generation_timestamp_seconds",
			Help: "Commit time of the active document generation",
		}),
	}
}

// ObserveLoad records one load with its outcome and duration.
func (m *Metrics) ObserveLoad(outcome string, d time.Duration) {
	m.LoadsTotal.WithLabelValues(outcome).Inc()
	m.LoadDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveParse records one parse attempt.
func (m *Metrics) ObserveParse(mediaType, outcome string) {
	m.ParsesTotal.WithLabelValues(mediaType, outcome).Inc()
}

// ObserveCommit records a document generation swap.
func (m *Metrics) ObserveCommit() {
	m.DocumentsInstalled.Inc()
	m.ActiveGeneration.SetToCurrentTime()
}
