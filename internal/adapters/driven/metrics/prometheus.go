// Package metrics records validation telemetry with Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/corpuslint/internal/core/domain"
	"github.com/custodia-labs/corpuslint/internal/core/ports/driven"
)

const namespace = "corpuslint"

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// Recorder exports phase timings and finding counts. Each Recorder owns
// its registry so tests and servers do not collide on the default one.
type Recorder struct {
	registry *prometheus.Registry

	phaseDuration *prometheus.HistogramVec
	runs          prometheus.Counter
	findings      *prometheus.CounterVec
	lastFatal     prometheus.Gauge
	lastAdvisory  prometheus.Gauge
}

// NewRecorder creates a recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		phaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of each validation phase.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"phase"}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_runs_total",
			Help:      "Number of completed validation runs.",
		}),
		findings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Findings reported, by kind and severity.",
		}, []string{"kind", "severity"}),
		lastFatal: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_fatal_findings",
			Help:      "Fatal findings in the most recent run.",
		}),
		lastAdvisory: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_advisory_findings",
			Help:      "Advisory findings in the most recent run.",
		}),
	}
}

// ObservePhase records how long a validation phase took.
func (r *Recorder) ObservePhase(phase string, d time.Duration) {
	r.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// RecordReport records the finding counts of a finished run.
func (r *Recorder) RecordReport(report *domain.Report) {
	r.runs.Inc()
	for _, c := range report.Summary.Counts {
		r.findings.WithLabelValues(string(c.Kind), string(c.Severity)).Add(float64(c.Count))
	}
	r.lastFatal.Set(float64(report.Summary.Fatal))
	r.lastAdvisory.Set(float64(report.Summary.Advisory))
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
