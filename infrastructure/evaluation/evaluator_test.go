package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/parul-khanna/aigovlens/internal/domain"
	"github.com/parul-khanna/aigovlens/internal/testutils"
)

func newTestEvaluator(t *testing.T) (*Evaluator, *testutils.MockCompletionClient) {
	t.Helper()
	client := testutils.NewMockCompletionClient("llama-3.1-70b-versatile")
	evaluator, err := NewEvaluator("governance", client, DefaultEvaluatorConfig())
	require.NoError(t, err)
	return evaluator, client
}

func TestNewEvaluatorValidation(t *testing.T) {
	t.Parallel()

	client := testutils.NewMockCompletionClient("test-model")

	_, err := NewEvaluator("", client, DefaultEvaluatorConfig())
	assert.ErrorContains(t, err, "name cannot be empty")

	_, err = NewEvaluator("governance", nil, DefaultEvaluatorConfig())
	assert.ErrorContains(t, err, "client cannot be nil")

	bad := DefaultEvaluatorConfig()
	bad.MaxTokens = 0
	_, err = NewEvaluator("governance", client, bad)
	assert.ErrorContains(t, err, "validation failed")

	bad = DefaultEvaluatorConfig()
	bad.Temperature = 1.5
	_, err = NewEvaluator("governance", client, bad)
	assert.ErrorContains(t, err, "validation failed")
}

func TestEvaluateSuccess(t *testing.T) {
	t.Parallel()

	evaluator, client := newTestEvaluator(t)

	result, err := evaluator.Evaluate(context.Background(), sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, 78, result.OverallScore)
	assert.Equal(t, domain.RiskHigh, result.RiskLevel)
	assert.Len(t, result.Risks, 4)
	assert.Equal(t, 1, client.CallCount())
}

func TestEvaluatePassesDecodingOptions(t *testing.T) {
	t.Parallel()

	evaluator, client := newTestEvaluator(t)

	_, err := evaluator.Evaluate(context.Background(), sampleRecord())
	require.NoError(t, err)

	options := client.LastCall().Options
	assert.Equal(t, DefaultTemperature, options["temperature"])
	assert.Equal(t, DefaultMaxTokens, options["max_tokens"])
	assert.Equal(t, SystemInstruction, options["system"])
	// The llama model supports structured output, so JSON mode is
	// requested.
	assert.Equal(t, "json_object", options["response_format"])
}

func TestEvaluateCanonicalizesDepartment(t *testing.T) {
	t.Parallel()

	evaluator, client := newTestEvaluator(t)

	record := sampleRecord()
	record.Department = "hr"

	_, err := evaluator.Evaluate(context.Background(), record)
	require.NoError(t, err)

	assert.Contains(t, client.LastCall().Prompt, "Department: Human Resources")
	// Canonicalization is prompt-only; the submitted spelling stays on
	// the caller's record for reports and exports.
	assert.Equal(t, "hr", record.Department)
}

func TestEvaluateRejectsInvalidRecordBeforeNetwork(t *testing.T) {
	t.Parallel()

	evaluator, client := newTestEvaluator(t)

	record := sampleRecord()
	record.Description = ""

	_, err := evaluator.Evaluate(context.Background(), record)
	require.Error(t, err)

	var pe *domain.PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Zero(t, client.CallCount(), "invalid records must never reach the completion service")
}

func TestEvaluateSurfacesParseErrors(t *testing.T) {
	t.Parallel()

	evaluator, client := newTestEvaluator(t)
	client.SetResponse(testutils.MalformedResponse)

	_, err := evaluator.Evaluate(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedJSON)

	client.SetResponse(testutils.SchemaViolationResponse)
	_, err = evaluator.Evaluate(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestEvaluateNeverRetries(t *testing.T) {
	t.Parallel()

	evaluator, client := newTestEvaluator(t)
	client.SetError(assert.AnError)

	_, err := evaluator.Evaluate(context.Background(), sampleRecord())
	require.Error(t, err)
	assert.Equal(t, 1, client.CallCount(), "retry policy belongs to the caller, not the evaluator")
}

func TestUnmarshalParameters(t *testing.T) {
	t.Parallel()

	evaluator, _ := newTestEvaluator(t)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("temperature: 0.1\nmax_tokens: 1000"), &node))

	updated, err := evaluator.UnmarshalParameters(node)
	require.NoError(t, err)

	// The receiver keeps its original configuration.
	assert.Equal(t, DefaultTemperature, evaluator.config.Temperature)
	assert.Equal(t, 0.1, updated.config.Temperature)
	assert.Equal(t, 1000, updated.config.MaxTokens)
	// Unset parameters fall back to defaults.
	assert.Equal(t, SystemInstruction, updated.config.SystemInstruction)
}

func TestUnmarshalParametersRejectsInvalid(t *testing.T) {
	t.Parallel()

	evaluator, _ := newTestEvaluator(t)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("max_tokens: 50"), &node))

	_, err := evaluator.UnmarshalParameters(node)
	assert.ErrorContains(t, err, "validation failed")
}

func TestSupportsJSONMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		model string
		want  bool
	}{
		{"gpt-4o-mini", true},
		{"llama-3.1-70b-versatile", true},
		{"gemini-2.0-flash-exp", true},
		{"claude-3-5-sonnet-20241022", false},
	}

	for _, tt := range tests {
		client := testutils.NewMockCompletionClient(tt.model)
		assert.Equal(t, tt.want, supportsJSONMode(client), tt.model)
	}
}
