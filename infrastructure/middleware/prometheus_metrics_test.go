package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parul-khanna/aigovlens/internal/ports"
)

// testPrometheusMetrics is shared across the package's tests because
// constructing a second instance would re-register the same metrics in
// the default registry and panic.
var testPrometheusMetrics *PrometheusMetrics

func init() {
	testPrometheusMetrics = NewPrometheusMetrics()
}

func TestNewPrometheusMetrics(t *testing.T) {
	pm := testPrometheusMetrics
	require.NotNil(t, pm)

	assert.NotNil(t, pm.stageLatency)
	assert.NotNil(t, pm.stageTotal)
	assert.NotNil(t, pm.counters)
	assert.NotNil(t, pm.gauges)
	assert.NotNil(t, pm.histograms)

	var _ ports.MetricsCollector = pm
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	pm := testPrometheusMetrics

	tests := []struct {
		name      string
		operation string
		duration  time.Duration
		labels    map[string]string
	}{
		{"stage latency with status", "evaluate", 120 * time.Millisecond, map[string]string{"status": "success"}},
		{"stage latency without status", "render_report", 45 * time.Millisecond, nil},
		{"stage latency with empty status", "export_json", 5 * time.Millisecond, map[string]string{"status": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordLatency(tt.operation, tt.duration, tt.labels)
			})
		})
	}
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	pm := testPrometheusMetrics

	tests := []struct {
		name   string
		metric string
		value  float64
		labels map[string]string
	}{
		{
			name:   "stage counter routes to stage series",
			metric: "pipeline_stage_total",
			value:  1.0,
			labels: map[string]string{"stage": "evaluate", "status": "success"},
		},
		{
			name:   "stage counter without stage label",
			metric: "pipeline_stage_total",
			value:  1.0,
			labels: map[string]string{"status": "error"},
		},
		{
			name:   "completion request counter as generic event",
			metric: "completion_requests_total",
			value:  1.0,
			labels: map[string]string{"provider": "groq", "model": "llama-3.1-70b-versatile", "status": "success"},
		},
		{
			name:   "token counter with partial labels",
			metric: "completion_tokens_total",
			value:  512.0,
			labels: map[string]string{"provider": "openai"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordCounter(tt.metric, tt.value, tt.labels)
			})
		})
	}
}

func TestPrometheusMetrics_RecordGaugeAndHistogram(t *testing.T) {
	pm := testPrometheusMetrics

	assert.NotPanics(t, func() {
		pm.RecordGauge("inflight_requests", 3.0, map[string]string{"provider": "anthropic", "model": "claude-3-5-sonnet-20241022"})
	})
	assert.NotPanics(t, func() {
		pm.RecordGauge("inflight_requests", 0.0, nil)
	})
	assert.NotPanics(t, func() {
		pm.RecordHistogram("prompt_bytes", 2048.0, map[string]string{"provider": "google"})
	})
	assert.NotPanics(t, func() {
		pm.RecordHistogram("prompt_bytes", 1e-9, nil)
	})
}

// Label maps from callers are untrusted; missing keys fall back to a
// stable default rather than exploding the series space.
func TestPrometheusMetrics_LabelHandling(t *testing.T) {
	pm := testPrometheusMetrics

	tests := []struct {
		name   string
		labels map[string]string
	}{
		{"nil labels map", nil},
		{"empty labels map", map[string]string{}},
		{"unrelated labels only", map[string]string{"other": "value"}},
		{"empty label values", map[string]string{"provider": "", "model": "", "status": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordLatency("evaluate", 10*time.Millisecond, tt.labels)
			})
			assert.NotPanics(t, func() {
				pm.RecordCounter("completion_requests_total", 1.0, tt.labels)
			})
			assert.NotPanics(t, func() {
				pm.RecordGauge("inflight_requests", 1.0, tt.labels)
			})
			assert.NotPanics(t, func() {
				pm.RecordHistogram("prompt_bytes", 0.5, tt.labels)
			})
		})
	}
}

func TestPrometheusMetrics_NegativeCounterPanics(t *testing.T) {
	pm := testPrometheusMetrics

	// Prometheus counters reject negative increments.
	assert.Panics(t, func() {
		pm.RecordCounter("completion_requests_total", -1.0, map[string]string{"provider": "groq"})
	})
}

func TestLabelOr(t *testing.T) {
	assert.Equal(t, "groq", labelOr(map[string]string{"provider": "groq"}, "provider", "unknown"))
	assert.Equal(t, "unknown", labelOr(map[string]string{"provider": ""}, "provider", "unknown"))
	assert.Equal(t, "unknown", labelOr(nil, "provider", "unknown"))
}
