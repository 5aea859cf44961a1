package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PipelineConfig is the YAML-backed specification for a complete
// pipeline deployment: which completion provider to use, how the
// evaluator behaves, and which operational limits and policies apply.
type PipelineConfig struct {
	// Version is the configuration schema version.
	Version string `yaml:"version" validate:"required"`

	// Provider selects and configures the completion service.
	Provider ProviderConfig `yaml:"provider" validate:"required"`

	// Evaluator carries evaluator-specific parameters as flexible YAML,
	// decoded and validated by the evaluator itself. Empty means
	// defaults.
	Evaluator yaml.Node `yaml:"evaluator"`

	// Limits configures request deadlines and client-side rate
	// limiting.
	Limits LimitsConfig `yaml:"limits"`

	// Retry configures the opt-in retry policy. Disabled by default;
	// the pipeline core never retries on its own.
	Retry RetryPolicyConfig `yaml:"retry"`

	// Metrics enables Prometheus collection for pipeline stages and
	// completion requests.
	Metrics MetricsConfig `yaml:"metrics"`
}

// ProviderConfig selects a completion provider and its credentials.
type ProviderConfig struct {
	// Type names the registered provider factory.
	Type string `yaml:"type" validate:"required,oneof=openai groq anthropic google"`

	// Model overrides the provider's default model when set.
	Model string `yaml:"model" validate:"omitempty,min=1,max=100"`

	// APIKeyEnv names the environment variable holding the bearer
	// credential. The key itself never appears in configuration files.
	APIKeyEnv string `yaml:"api_key_env" validate:"required,min=1"`

	// BaseURL overrides the provider's default endpoint, for proxies
	// and compatible gateways.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// LimitsConfig bounds individual completion requests.
type LimitsConfig struct {
	// TimeoutSeconds is the per-request deadline. Zero disables the
	// timeout middleware.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"omitempty,min=1,max=600"`

	// RequestsPerMinute is the client-side rate limit. Zero disables
	// rate limiting.
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"omitempty,min=1,max=10000"`

	// Burst is the rate limiter burst size; defaults to 1 when rate
	// limiting is enabled.
	Burst int `yaml:"burst" validate:"omitempty,min=1,max=1000"`
}

// RetryPolicyConfig is the caller-level retry opt-in.
type RetryPolicyConfig struct {
	// Enabled wraps the completion client with exponential backoff
	// retries for transient failures.
	Enabled bool `yaml:"enabled"`

	// MaxAttempts is the number of retries after the initial attempt.
	MaxAttempts int `yaml:"max_attempts" validate:"omitempty,min=1,max=10"`

	// BaseDelayMS is the delay in milliseconds before the first retry.
	BaseDelayMS int `yaml:"base_delay_ms" validate:"omitempty,min=1,max=60000"`

	// MaxDelayMS caps the backoff growth in milliseconds.
	MaxDelayMS int `yaml:"max_delay_ms" validate:"omitempty,min=1,max=300000"`
}

// MetricsConfig toggles Prometheus collection.
type MetricsConfig struct {
	// Enabled attaches the Prometheus collector to the pipeline and the
	// completion client.
	Enabled bool `yaml:"enabled"`
}

// LoadPipelineConfig parses and validates a YAML pipeline
// configuration.
func LoadPipelineConfig(data []byte) (PipelineConfig, error) {
	var config PipelineConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return PipelineConfig{}, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return PipelineConfig{}, fmt.Errorf("pipeline config validation failed: %w", err)
	}
	return config, nil
}
