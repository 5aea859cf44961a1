package application

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/parul-khanna/aigovlens/infrastructure/evaluation"
	"github.com/parul-khanna/aigovlens/infrastructure/export"
	"github.com/parul-khanna/aigovlens/infrastructure/llm"
	"github.com/parul-khanna/aigovlens/infrastructure/middleware"
	"github.com/parul-khanna/aigovlens/infrastructure/report"
	"github.com/parul-khanna/aigovlens/internal/ports"
)

// defaultModels maps provider types to their reference models, used
// when the configuration leaves the model unset.
var defaultModels = map[string]string{
	"openai":    llm.OpenAIDefaultModel,
	"groq":      llm.GroqDefaultModel,
	"anthropic": llm.AnthropicDefaultModel,
	"google":    llm.GoogleDefaultModel,
}

// NewPipelineFromConfig assembles a complete, ready-to-run pipeline
// from a validated configuration: provider client with its middleware
// chain, the optional retry wrapper, the evaluator, and the two
// artifact producers.
func NewPipelineFromConfig(config PipelineConfig) (*Pipeline, error) {
	apiKey := os.Getenv(config.Provider.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", config.Provider.APIKeyEnv)
	}

	var collector ports.MetricsCollector
	if config.Metrics.Enabled {
		collector = middleware.NewPrometheusMetrics()
	}

	model := config.Provider.Model
	if model == "" {
		model = defaultModels[config.Provider.Type]
	}

	var client ports.CompletionClient
	client, err := llm.NewClient(config.Provider.Type, llm.ClientConfig{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    config.Provider.BaseURL,
		Middleware: buildMiddleware(config, collector),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	if config.Retry.Enabled {
		client = llm.NewRetryingCompletionClient(client, retryConfig(config.Retry))
	}

	evaluatorConfig := evaluation.DefaultEvaluatorConfig()
	evaluator, err := evaluation.NewEvaluator("governance", client, evaluatorConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator: %w", err)
	}
	if !config.Evaluator.IsZero() {
		evaluator, err = evaluator.UnmarshalParameters(config.Evaluator)
		if err != nil {
			return nil, fmt.Errorf("failed to configure evaluator: %w", err)
		}
	}

	opts := []PipelineOption{}
	if collector != nil {
		opts = append(opts, WithMetrics(collector))
	}

	return NewPipeline(evaluator, report.NewPDFRenderer(), export.NewJSONExporter(), opts...)
}

// buildMiddleware translates the limits configuration into the client
// middleware chain: timeout outermost, then rate limiting, then metrics
// and tracing closest to the provider.
func buildMiddleware(config PipelineConfig, collector ports.MetricsCollector) []llm.Middleware {
	var chain []llm.Middleware

	if config.Limits.TimeoutSeconds > 0 {
		chain = append(chain, llm.TimeoutMiddleware(time.Duration(config.Limits.TimeoutSeconds)*time.Second))
	}
	if config.Limits.RequestsPerMinute > 0 {
		burst := config.Limits.Burst
		if burst == 0 {
			burst = 1
		}
		chain = append(chain, llm.RateLimitMiddleware(rate.Limit(float64(config.Limits.RequestsPerMinute)/60.0), burst))
	}
	if collector != nil {
		chain = append(chain, llm.MetricsMiddleware(collector))
	}
	chain = append(chain, llm.TracingMiddleware("aigovlens"))

	return chain
}

// retryConfig translates the YAML policy into the client retry
// configuration, filling defaults for unset fields.
func retryConfig(policy RetryPolicyConfig) llm.RetryConfig {
	config := llm.DefaultRetryConfig()
	if policy.MaxAttempts > 0 {
		config.MaxAttempts = policy.MaxAttempts
	}
	if policy.BaseDelayMS > 0 {
		config.BaseDelay = time.Duration(policy.BaseDelayMS) * time.Millisecond
	}
	if policy.MaxDelayMS > 0 {
		config.MaxDelay = time.Duration(policy.MaxDelayMS) * time.Millisecond
	}
	return config
}
