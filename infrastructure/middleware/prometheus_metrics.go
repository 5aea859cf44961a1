// Package middleware provides cross-cutting operational concerns for
// the evaluation pipeline, currently Prometheus metrics collection.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/parul-khanna/aigovlens/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements
// MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It covers both layers of the pipeline: stage-level
// latency and outcomes (evaluate, render_report, export_json) and
// completion-request counters from the client middleware.
type PrometheusMetrics struct {
	stageLatency *prometheus.HistogramVec
	stageTotal   *prometheus.CounterVec
	counters     *prometheus.CounterVec
	gauges       *prometheus.GaugeVec
	histograms   *prometheus.HistogramVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and
// registers all metrics in the default Prometheus registry. Construct
// it once per process; duplicate registration panics.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		stageLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_duration_seconds",
				Help:    "Execution time of evaluation pipeline stages.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage", "status"},
		),
		stageTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_stage_total",
				Help: "Total pipeline stage executions by outcome.",
			},
			[]string{"stage", "status"},
		),
		counters: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_events_total",
				Help: "Generic event counters from pipeline components.",
			},
			[]string{"metric", "provider", "model", "status"},
		),
		gauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pipeline_state",
				Help: "Current state values reported by pipeline components.",
			},
			[]string{"metric", "provider", "model"},
		),
		histograms: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_observations",
				Help:    "Generic value distributions from pipeline components.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric", "provider", "model"},
		),
	}
}

// RecordLatency records stage execution time.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	pm.stageLatency.WithLabelValues(operation, labelOr(labels, "status", "success")).Observe(duration.Seconds())
}

// RecordCounter increments a counter metric. Stage counters route to
// the dedicated stage series; everything else lands in the generic
// event counter keyed by provider and model.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	if metric == "pipeline_stage_total" {
		pm.stageTotal.WithLabelValues(labelOr(labels, "stage", "unknown"), labelOr(labels, "status", "success")).Add(value)
		return
	}
	pm.counters.WithLabelValues(
		metric,
		labelOr(labels, "provider", "unknown"),
		labelOr(labels, "model", "unknown"),
		labelOr(labels, "status", "success"),
	).Add(value)
}

// RecordGauge sets a gauge value.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64, labels map[string]string) {
	pm.gauges.WithLabelValues(
		metric,
		labelOr(labels, "provider", "unknown"),
		labelOr(labels, "model", "unknown"),
	).Set(value)
}

// RecordHistogram records a value distribution observation.
func (pm *PrometheusMetrics) RecordHistogram(metric string, value float64, labels map[string]string) {
	pm.histograms.WithLabelValues(
		metric,
		labelOr(labels, "provider", "unknown"),
		labelOr(labels, "model", "unknown"),
	).Observe(value)
}

func labelOr(labels map[string]string, key, fallback string) string {
	if v, ok := labels[key]; ok && v != "" {
		return v
	}
	return fallback
}
