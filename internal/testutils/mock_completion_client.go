// Package testutils provides deterministic test doubles for the
// evaluation pipeline, most importantly a mock completion client with
// canned governance verdicts.
package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/parul-khanna/aigovlens/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.CompletionClient = (*MockCompletionClient)(nil)

// MockCompletionClient implements ports.CompletionClient with
// deterministic responses selected by substring matching against the
// prompt. It records every call for assertion and can be primed with a
// fixed response or error, which takes precedence over pattern
// matching.
type MockCompletionClient struct {
	mu sync.Mutex

	model     string
	responses map[string]string
	patterns  []string

	fixedResponse string
	fixedSet      bool
	err           error

	// Calls captures every Complete invocation in order.
	Calls []MockCall
}

// MockCall is one recorded Complete invocation.
type MockCall struct {
	Prompt  string
	Options map[string]any
}

// NewMockCompletionClient creates a mock primed with a full, valid
// governance verdict for any evaluation prompt.
func NewMockCompletionClient(model string) *MockCompletionClient {
	client := &MockCompletionClient{
		model:     model,
		responses: make(map[string]string),
	}
	client.AddResponse("governance analyst", ValidEvaluationResponse)
	return client
}

// AddResponse registers a response returned when the prompt contains
// pattern. Patterns are checked in registration order; the empty
// pattern acts as the fallback.
func (m *MockCompletionClient) AddResponse(pattern, response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.responses[pattern]; !exists {
		m.patterns = append(m.patterns, pattern)
	}
	m.responses[pattern] = response
}

// SetResponse primes a fixed response returned for every call,
// bypassing pattern matching.
func (m *MockCompletionClient) SetResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixedResponse = response
	m.fixedSet = true
}

// SetError makes every subsequent Complete call fail with err.
func (m *MockCompletionClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Complete returns the primed error, the primed fixed response, or the
// first pattern-matched response, in that order of precedence.
func (m *MockCompletionClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if prompt == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Prompt: prompt, Options: options})

	if m.err != nil {
		return "", m.err
	}
	if m.fixedSet {
		return m.fixedResponse, nil
	}

	promptLower := strings.ToLower(prompt)
	for _, pattern := range m.patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(promptLower, strings.ToLower(pattern)) {
			return m.responses[pattern], nil
		}
	}
	if fallback, ok := m.responses[""]; ok {
		return fallback, nil
	}
	return "", fmt.Errorf("no mock response matches prompt")
}

// EstimateTokens approximates four characters per token.
func (m *MockCompletionClient) EstimateTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	tokens := len(text) / 4
	if tokens == 0 {
		tokens = 1
	}
	return tokens, nil
}

// GetModel returns the mock model identifier.
func (m *MockCompletionClient) GetModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model
}

// SetModel updates the mock model identifier.
func (m *MockCompletionClient) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.model = model
}

// CallCount returns the number of Complete invocations so far.
func (m *MockCompletionClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent invocation, or a zero value when
// none happened.
func (m *MockCompletionClient) LastCall() MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return MockCall{}
	}
	return m.Calls[len(m.Calls)-1]
}

// Reset clears recorded calls and primed responses, restoring the
// default governance verdict.
func (m *MockCompletionClient) Reset() {
	m.mu.Lock()
	m.responses = make(map[string]string)
	m.patterns = nil
	m.fixedResponse = ""
	m.fixedSet = false
	m.err = nil
	m.Calls = nil
	m.mu.Unlock()
	m.AddResponse("governance analyst", ValidEvaluationResponse)
}
