package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/parul-khanna/aigovlens/internal/ports"
)

// Default retry configuration constants.
const (
	// DefaultMaxAttempts is the default number of retry attempts.
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is the initial delay before the first retry.
	DefaultBaseDelay = 1 * time.Second
	// DefaultMaxDelay caps the delay between retry attempts.
	DefaultMaxDelay = 30 * time.Second
	// DefaultJitterPercent is the default jitter percentage.
	DefaultJitterPercent = 0.1
)

// RetryConfig controls the exponential backoff behavior of
// RetryingCompletionClient.
type RetryConfig struct {
	// MaxAttempts is the maximum number of retries after the initial
	// attempt. Zero disables retries.
	MaxAttempts int

	// BaseDelay is the delay before the first retry; subsequent delays
	// grow exponentially.
	BaseDelay time.Duration

	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration

	// JitterPercent randomizes each delay by up to this fraction to
	// avoid synchronized retries. Range 0.0 to 1.0.
	JitterPercent float64
}

// DefaultRetryConfig returns a RetryConfig with sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   DefaultMaxAttempts,
		BaseDelay:     DefaultBaseDelay,
		MaxDelay:      DefaultMaxDelay,
		JitterPercent: DefaultJitterPercent,
	}
}

var _ ports.CompletionClient = (*RetryingCompletionClient)(nil)

// RetryingCompletionClient wraps a CompletionClient with retry logic.
//
// The evaluation pipeline never retries on its own; retry policy
// belongs to the caller. Wrapping the client in this type is how a
// caller opts in: transient failures (rate limits, server errors,
// network problems, timeouts) are retried with exponential backoff and
// jitter, everything else fails immediately.
type RetryingCompletionClient struct {
	client ports.CompletionClient
	config RetryConfig
}

// NewRetryingCompletionClient wraps client with the given retry
// policy.
func NewRetryingCompletionClient(client ports.CompletionClient, config RetryConfig) *RetryingCompletionClient {
	return &RetryingCompletionClient{client: client, config: config}
}

// Complete sends a completion request, retrying transient failures
// according to the configured policy.
func (r *RetryingCompletionClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.config.MaxAttempts; attempt++ {
		response, err := r.client.Complete(ctx, prompt, options)
		if err == nil {
			return response, nil
		}

		lastErr = err
		if attempt == r.config.MaxAttempts || !isRetryableError(err) {
			break
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled during retry: %w", ctx.Err())
		case <-time.After(r.retryDelay(attempt)):
		}
	}
	return "", lastErr
}

// EstimateTokens delegates to the wrapped client.
func (r *RetryingCompletionClient) EstimateTokens(text string) (int, error) {
	return r.client.EstimateTokens(text)
}

// GetModel delegates to the wrapped client.
func (r *RetryingCompletionClient) GetModel() string { return r.client.GetModel() }

// retryDelay computes the exponentially backed-off, jittered delay for
// the given attempt number.
func (r *RetryingCompletionClient) retryDelay(attempt int) time.Duration {
	delay := r.config.BaseDelay * time.Duration(1<<uint(attempt))
	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.JitterPercent > 0 {
		jitter := time.Duration(float64(delay) * r.config.JitterPercent * rand.Float64())
		delay += jitter
	}

	return delay
}

// isRetryableError consults the ServiceError classification; errors
// without one are treated as permanent.
func isRetryableError(err error) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.IsRetryable()
	}
	return false
}
