// Package llm provides the completion-service client used by the
// evaluation pipeline. It abstracts multiple providers (Groq, OpenAI,
// Anthropic, Google) behind a common interface and layers cross-cutting
// concerns — timeouts, rate limiting, metrics, tracing — through a
// middleware chain, so the pipeline core never deals with
// provider-specific APIs or transport details.
//
// Basic usage:
//
//	client, err := llm.NewClient("groq", llm.ClientConfig{
//	    APIKey: token,
//	    Model:  "llama-3.1-70b-versatile",
//	})
//	response, err := client.Complete(ctx, prompt, nil)
//
// With middleware:
//
//	client, err := llm.NewClient("anthropic", llm.ClientConfig{
//	    APIKey: token,
//	    Model:  "claude-3-5-sonnet-20241022",
//	    Middleware: []llm.Middleware{
//	        llm.TimeoutMiddleware(30 * time.Second),
//	        llm.RateLimitMiddleware(5, 10),
//	        llm.MetricsMiddleware(collector),
//	    },
//	})
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/parul-khanna/aigovlens/internal/ports"
)

// CoreLLM is the minimal surface a provider must implement. The
// middleware system wraps any conforming implementation.
type CoreLLM interface {
	// DoRequest sends a prompt to the provider and returns the
	// response text plus input/output token counts.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel updates the model used for subsequent requests.
	SetModel(model string)
}

// TokenEstimator approximates token counts when the provider does not
// report exact usage.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// ClientConfig holds the settings for constructing a client.
type ClientConfig struct {
	// APIKey is the caller-supplied bearer credential. Required.
	APIKey string

	// Model selects the provider model. Required.
	Model string

	// BaseURL overrides the provider's default endpoint. The groq
	// provider sets this automatically when left empty.
	BaseURL string

	// Timeout bounds individual HTTP requests at the transport level.
	// Zero means no transport timeout; callers usually also apply
	// TimeoutMiddleware for a request-scoped deadline.
	Timeout time.Duration

	// TokenEstimator provides custom token counting. Nil selects a
	// character-based estimator.
	TokenEstimator TokenEstimator

	// Middleware is applied in order, first entry outermost.
	Middleware []Middleware
}

// Middleware wraps a CoreLLM to add cross-cutting behavior without
// touching provider logic.
type Middleware func(CoreLLM) CoreLLM

// Client implements ports.CompletionClient by delegating to a
// middleware-wrapped provider core.
type Client struct {
	core      CoreLLM
	estimator TokenEstimator
}

var _ ports.CompletionClient = (*Client)(nil)

// NewClient assembles a provider and its middleware chain into a
// ready-to-use completion client.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Apply middleware in reverse order so the first is outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	estimator := config.TokenEstimator
	if estimator == nil {
		estimator = &SimpleTokenEstimator{}
	}

	return &Client{core: core, estimator: estimator}, nil
}

// Complete sends a prompt and returns the response text, discarding
// token usage for callers that do not track it.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.CompleteWithUsage(ctx, prompt, options)
	return response, err
}

// CompleteWithUsage sends a prompt and returns the response text along
// with input and output token counts.
func (c *Client) CompleteWithUsage(ctx context.Context, prompt string, options map[string]any) (string, int, int, error) {
	return c.core.DoRequest(ctx, prompt, options)
}

// EstimateTokens approximates the token count of text.
func (c *Client) EstimateTokens(text string) (int, error) {
	return c.estimator.EstimateTokens(text), nil
}

// GetModel returns the configured model name.
func (c *Client) GetModel() string { return c.core.GetModel() }

// SimpleTokenEstimator estimates roughly four characters per token,
// which is adequate for budget sizing on English prompts.
type SimpleTokenEstimator struct{}

// EstimateTokens returns an approximate token count.
func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// ProviderFactory creates a CoreLLM from configuration.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a provider under a type name,
// allowing extension without modifying this package.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}
