package llm

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Default request parameters shared across providers.
const (
	// DefaultMaxTokens bounds the generated output when the caller
	// does not specify a budget. Generous enough for a full structured
	// evaluation, bounded enough to keep responses predictable.
	DefaultMaxTokens = 2000

	// MinPenalty and MaxPenalty bound frequency/presence penalties for
	// providers that support them.
	MinPenalty = -2.0
	MaxPenalty = 2.0
)

// BaseProvider provides common, thread-safe model-name handling for
// all providers.
type BaseProvider struct {
	mu    sync.RWMutex
	model string
}

// GetModel returns the configured model name. Safe for concurrent use.
func (b *BaseProvider) GetModel() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.model
}

// SetModel updates the model name. Safe for concurrent use.
func (b *BaseProvider) SetModel(model string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.model = model
}

// RequestOptions is the standardized set of request parameters shared
// by all providers.
type RequestOptions struct {
	// MaxTokens caps the generated output length.
	MaxTokens int
	// Model identifies the model for this request.
	Model string
	// Temperature controls output randomness; nil uses the provider
	// default. The pipeline runs with a low value for
	// deterministic-leaning judgments.
	Temperature *float64
	// TopP is nucleus sampling; nil uses the provider default.
	TopP *float64
	// System is the system instruction guiding the model's behavior.
	System string
	// Extra holds provider-specific options outside the standard set,
	// such as response_format for JSON mode.
	Extra map[string]any
}

// ParseRequestOptions extracts standardized request parameters from an
// options map, applying defaults for missing or invalid entries and
// collecting unrecognized keys into Extra.
func ParseRequestOptions(opts map[string]any, defaultModel string) RequestOptions {
	options := RequestOptions{
		MaxTokens: ExtractOptionalInt(opts, "max_tokens", DefaultMaxTokens, IsPositiveInt),
		Model:     ExtractOptionalString(opts, "model", defaultModel, IsNonEmptyString),
		System:    ExtractOptionalString(opts, "system", "", nil),
		Extra:     make(map[string]any),
	}

	if temp := ExtractOptionalFloat64(opts, "temperature", -1, IsValidTemperature); temp != -1 {
		options.Temperature = &temp
	}
	if topP := ExtractOptionalFloat64(opts, "top_p", -1, IsValidTopP); topP != -1 {
		options.TopP = &topP
	}

	for k, v := range opts {
		switch k {
		case "max_tokens", "model", "system", "temperature", "top_p":
			// Standard options already processed.
		default:
			options.Extra[k] = v
		}
	}

	return options
}

// TokenCounter estimates token counts when an exact tokenizer is not
// available for a model.
type TokenCounter struct {
	// CharactersPerToken is the average characters-per-token ratio.
	CharactersPerToken float64
}

// NewTokenCounter creates a TokenCounter with a ratio suited to
// English text.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{CharactersPerToken: 4.0}
}

// EstimateTokens estimates the token count of text.
func (tc *TokenCounter) EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text)) / tc.CharactersPerToken)
}

// GetTokenCount returns the provider-reported count when positive,
// falling back to estimation.
func (tc *TokenCounter) GetTokenCount(actualCount int, text string) int {
	if actualCount > 0 {
		return actualCount
	}
	return tc.EstimateTokens(text)
}

// EstimateTokens is a package-level convenience using the default
// characters-per-token ratio.
func EstimateTokens(text string) int {
	return NewTokenCounter().EstimateTokens(text)
}

// ClampFloat64 restricts v to [min, max].
func ClampFloat64(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// SafeFloat32 converts common numeric option types to float32,
// reporting whether the conversion was possible.
func SafeFloat32(v any) (float32, bool) {
	switch val := v.(type) {
	case float32:
		return val, true
	case float64:
		return float32(val), true
	case int:
		return float32(val), true
	default:
		return 0, false
	}
}

// ValidateBaseURL checks that an endpoint override is a well-formed
// http(s) URL and returns it trimmed.
func ValidateBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a host")
	}
	return trimmed, nil
}

// ValidateTimeout floors unreasonably small timeouts so a transport
// timeout never fires before a request can realistically complete.
func ValidateTimeout(timeout time.Duration) time.Duration {
	const minTimeout = time.Second
	if timeout < minTimeout {
		return minTimeout
	}
	return timeout
}
