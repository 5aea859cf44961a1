// Package ports defines the interfaces between the evaluation pipeline
// and its infrastructure: the completion service client, the artifact
// producers, and operational metrics. Implementations live under
// infrastructure/; the application layer depends only on these
// interfaces.
package ports

import (
	"context"
	"time"

	"github.com/parul-khanna/aigovlens/internal/domain"
)

// CompletionClient is the interface to an external text-completion
// service. Implementations handle provider-specific authentication,
// request formatting, and error classification.
type CompletionClient interface {
	// Complete sends a prompt to the completion service and returns
	// the raw generated text.
	//
	// The options map carries decoding parameters without widening the
	// interface per provider. Recognized keys include:
	//   - "temperature": float64
	//   - "max_tokens": int
	//   - "system": string (system instruction)
	//   - "model": string (override the configured model)
	//   - "response_format": provider-specific JSON-mode hint
	//
	// Implementations must respect ctx for cancellation and deadlines
	// so an abandoned run does not leak the in-flight connection.
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens approximates the token count of text, for cost
	// estimation and output-budget sizing.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier in use, for logging and
	// capability checks.
	GetModel() string
}

// UseCaseEvaluator turns a validated use case record into a validated
// evaluation result, or a typed error (PreconditionError, ServiceError
// from the completion layer, or ParseError). It never returns a
// partial result.
type UseCaseEvaluator interface {
	Evaluate(ctx context.Context, record domain.UseCaseRecord) (domain.EvaluationResult, error)
}

// ReportRenderer produces the paginated governance report for a
// completed evaluation. Rendering is pure: identical inputs and
// timestamp yield identical bytes.
type ReportRenderer interface {
	Render(record domain.UseCaseRecord, result domain.EvaluationResult, generatedAt time.Time) ([]byte, error)
}

// ExportSerializer produces the canonical structured export for a
// completed evaluation. Serialization is pure and round-trippable.
type ExportSerializer interface {
	Export(bundle domain.ExportBundle) ([]byte, error)
}

// MetricsCollector records operational metrics for pipeline stages and
// completion requests. Implementations integrate with systems such as
// Prometheus; a nil collector disables collection.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
