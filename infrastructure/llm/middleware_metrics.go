package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/parul-khanna/aigovlens/internal/ports"
)

// metricsLLM records request latency, outcomes, and token usage for
// operational monitoring of completion calls.
type metricsLLM struct {
	next      CoreLLM
	collector ports.MetricsCollector
}

// MetricsMiddleware creates middleware that reports completion-call
// metrics to the given collector. A nil collector disables reporting.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &metricsLLM{next: next, collector: collector}
	}
}

// DoRequest executes the request while recording latency, status, and
// token counters labeled by provider and model.
func (m *metricsLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	start := time.Now()
	response, tokensIn, tokensOut, err := m.next.DoRequest(ctx, prompt, opts)

	labels := map[string]string{
		"provider": m.extractProvider(err),
		"model":    m.next.GetModel(),
		"status":   "success",
	}

	if err != nil {
		labels["status"] = "error"
		var svcErr *ServiceError
		if errors.As(err, &svcErr) && svcErr.Type == ErrorTypeTimeout {
			labels["status"] = "timeout"
		} else if ctx.Err() == context.DeadlineExceeded {
			labels["status"] = "timeout"
		}
	}

	if m.collector != nil {
		m.collector.RecordHistogram("completion_latency_seconds", time.Since(start).Seconds(), labels)
		m.collector.RecordCounter("completion_requests_total", 1, labels)

		if err == nil {
			labels["token_type"] = "input"
			m.collector.RecordCounter("completion_tokens_total", float64(tokensIn), labels)

			labels["token_type"] = "output"
			m.collector.RecordCounter("completion_tokens_total", float64(tokensOut), labels)
		}
	}

	return response, tokensIn, tokensOut, err
}

// extractProvider infers the provider label, preferring the classified
// error's provider and falling back to model-name heuristics.
func (m *metricsLLM) extractProvider(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.Provider != "" {
		return svcErr.Provider
	}

	model := strings.ToLower(m.next.GetModel())
	switch {
	case strings.Contains(model, "llama"):
		return "groq"
	case strings.Contains(model, "gpt"):
		return "openai"
	case strings.Contains(model, "claude"):
		return "anthropic"
	case strings.Contains(model, "gemini"):
		return "google"
	default:
		return "unknown"
	}
}

// GetModel returns the model name from the wrapped implementation.
func (m *metricsLLM) GetModel() string { return m.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (m *metricsLLM) SetModel(model string) { m.next.SetModel(model) }
