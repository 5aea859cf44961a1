package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/parul-khanna/aigovlens/internal/domain"
	"github.com/parul-khanna/aigovlens/internal/ports"
)

var _ ports.UseCaseEvaluator = (*Evaluator)(nil)

// Default decoding parameters. Low temperature keeps the judgment
// deterministic-leaning; the token budget leaves room for a full
// structured verdict without letting responses grow unbounded.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 2000
)

// EvaluatorConfig defines the tunable parameters of the evaluator.
// All fields are validated at construction and when unmarshaled from
// YAML parameters.
type EvaluatorConfig struct {
	// SystemInstruction is sent as the system prompt with every
	// request. It must pin the model to JSON-only output.
	SystemInstruction string `yaml:"system_instruction" json:"system_instruction" validate:"required,min=10"`

	// Temperature controls randomness in the model's judgment
	// (0.0-1.0). Keep it low for consistent scoring.
	Temperature float64 `yaml:"temperature" json:"temperature" validate:"min=0.0,max=1.0"`

	// MaxTokens bounds the generated output length.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens" validate:"required,min=256,max=8000"`

	// CanonicalizeDepartment folds free-text department names onto
	// the known catalog before prompt construction.
	CanonicalizeDepartment bool `yaml:"canonicalize_department" json:"canonicalize_department"`
}

// DefaultEvaluatorConfig returns the reference configuration.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		SystemInstruction:      SystemInstruction,
		Temperature:            DefaultTemperature,
		MaxTokens:              DefaultMaxTokens,
		CanonicalizeDepartment: true,
	}
}

// Evaluator runs the core pipeline sequence for one use case: build
// the prompt, call the completion service, parse and validate the
// response. It is stateless across invocations and safe for concurrent
// use; each call owns its record and result exclusively.
type Evaluator struct {
	name     string
	config   EvaluatorConfig
	client   ports.CompletionClient
	builder  *PromptBuilder
	parser   *ResponseParser
	validate *validator.Validate
}

// NewEvaluator creates an Evaluator with the given completion client
// and configuration. Configuration is validated eagerly so a
// misconfigured evaluator never reaches the network.
func NewEvaluator(name string, client ports.CompletionClient, config EvaluatorConfig) (*Evaluator, error) {
	if name == "" {
		return nil, fmt.Errorf("evaluator name cannot be empty")
	}
	if client == nil {
		return nil, fmt.Errorf("completion client cannot be nil")
	}

	v := validator.New()
	if err := v.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	builder, err := NewPromptBuilder()
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		name:     name,
		config:   config,
		client:   client,
		builder:  builder,
		parser:   NewResponseParser(),
		validate: v,
	}, nil
}

// Name returns the evaluator's identifier.
func (e *Evaluator) Name() string { return e.name }

// Evaluate runs one use case through the pipeline core. Failures are
// typed: *domain.PreconditionError before the network, a ServiceError
// from the completion layer, or *domain.ParseError after it. No
// automatic retry happens here; that policy belongs to the caller.
//
// Department canonicalization applies to the prompt only. The record
// is taken by value, so the caller's copy keeps the submitted spelling
// and downstream artifacts show what the submitter wrote.
func (e *Evaluator) Evaluate(ctx context.Context, record domain.UseCaseRecord) (domain.EvaluationResult, error) {
	if err := record.Validate(); err != nil {
		return domain.EvaluationResult{}, err
	}

	if e.config.CanonicalizeDepartment {
		record.Department = CanonicalDepartment(record.Department)
	}

	prompt, err := e.builder.Build(record)
	if err != nil {
		return domain.EvaluationResult{}, err
	}

	options := map[string]any{
		"temperature": e.config.Temperature,
		"max_tokens":  e.config.MaxTokens,
		"system":      e.config.SystemInstruction,
	}

	if supportsJSONMode(e.client) {
		options["response_format"] = "json_object"
	}

	response, err := e.client.Complete(ctx, prompt, options)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("evaluator %s: completion request failed: %w", e.name, err)
	}

	result, err := e.parser.Parse(response)
	if err != nil {
		return domain.EvaluationResult{}, fmt.Errorf("evaluator %s: %w", e.name, err)
	}

	return result, nil
}

// Validate checks that the evaluator is ready for execution.
func (e *Evaluator) Validate() error {
	if e.client == nil {
		return fmt.Errorf("evaluator %s: completion client is not configured", e.name)
	}
	if err := e.validate.Struct(e.config); err != nil {
		return fmt.Errorf("evaluator %s: %w", e.name, err)
	}
	if e.client.GetModel() == "" {
		return fmt.Errorf("evaluator %s: completion client model is not configured", e.name)
	}
	return nil
}

// UnmarshalParameters decodes YAML parameters and returns a new
// Evaluator with the updated configuration, leaving the receiver
// untouched for thread safety.
func (e *Evaluator) UnmarshalParameters(params yaml.Node) (*Evaluator, error) {
	config := DefaultEvaluatorConfig()
	if err := params.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := e.validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &Evaluator{
		name:     e.name,
		config:   config,
		client:   e.client,
		builder:  e.builder,
		parser:   e.parser,
		validate: e.validate,
	}, nil
}

// supportsJSONMode reports whether the client's model accepts a
// structured JSON output constraint.
func supportsJSONMode(client ports.CompletionClient) bool {
	model := strings.ToLower(client.GetModel())
	return strings.Contains(model, "gpt") ||
		strings.Contains(model, "llama") ||
		strings.Contains(model, "gemini")
}
