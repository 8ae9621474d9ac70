// Package metrics exposes Prometheus instruments for analysis runs and the
// corpus. All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service instruments on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	AnalysisRuns        *prometheus.CounterVec
	AnalysisDuration    prometheus.Histogram
	CorpusDocuments     *prometheus.GaugeVec
	RetentionViolations prometheus.Gauge
}

// New creates a Metrics instance with every instrument registered on a fresh
// registry alongside the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AnalysisRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dossier_analysis_runs_total",
			Help: "Total number of analysis runs by selected scenario",
		}, []string{"scenario"}),
		AnalysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dossier_analysis_duration_seconds",
			Help:    "Duration of analysis runs including pacing delay",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 1.5, 2, 5, 10},
		}),
		CorpusDocuments: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dossier_corpus_documents",
			Help: "Documents currently in the corpus by category",
		}, []string{"category"}),
		RetentionViolations: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dossier_retention_violations",
			Help: "Retention violations counted by the most recent run",
		}),
	}
}

// Registry returns the private registry backing the instruments.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRun records a finished run for scenario.
// Call with time.Now() at the start of the run.
func (m *Metrics) ObserveRun(scenario string, start time.Time) {
	if m == nil {
		return
	}
	m.AnalysisRuns.WithLabelValues(scenario).Inc()
	m.AnalysisDuration.Observe(time.Since(start).Seconds())
}

// SetCorpusDocuments records the document count for category.
func (m *Metrics) SetCorpusDocuments(category string, n int) {
	if m == nil {
		return
	}
	m.CorpusDocuments.WithLabelValues(category).Set(float64(n))
}

// SetViolations records the latest retention violation count.
func (m *Metrics) SetViolations(n int) {
	if m == nil {
		return
	}
	m.RetentionViolations.Set(float64(n))
}
