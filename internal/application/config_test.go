package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
version: "1.0"
provider:
  type: groq
  model: llama-3.1-70b-versatile
  api_key_env: GROQ_API_KEY
evaluator:
  temperature: 0.2
  max_tokens: 1500
limits:
  timeout_seconds: 60
  requests_per_minute: 30
  burst: 5
retry:
  enabled: true
  max_attempts: 2
  base_delay_ms: 500
metrics:
  enabled: true
`

func TestLoadPipelineConfig(t *testing.T) {
	t.Parallel()

	config, err := LoadPipelineConfig([]byte(validConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "groq", config.Provider.Type)
	assert.Equal(t, "llama-3.1-70b-versatile", config.Provider.Model)
	assert.Equal(t, "GROQ_API_KEY", config.Provider.APIKeyEnv)
	assert.Equal(t, 60, config.Limits.TimeoutSeconds)
	assert.Equal(t, 30, config.Limits.RequestsPerMinute)
	assert.True(t, config.Retry.Enabled)
	assert.Equal(t, 2, config.Retry.MaxAttempts)
	assert.True(t, config.Metrics.Enabled)
	assert.False(t, config.Evaluator.IsZero())
}

func TestLoadPipelineConfigMinimal(t *testing.T) {
	t.Parallel()

	config, err := LoadPipelineConfig([]byte(`
version: "1.0"
provider:
  type: openai
  api_key_env: OPENAI_API_KEY
`))
	require.NoError(t, err)

	assert.Empty(t, config.Provider.Model)
	assert.False(t, config.Retry.Enabled)
	assert.True(t, config.Evaluator.IsZero())
}

func TestLoadPipelineConfigRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing version",
			yaml: "provider:\n  type: groq\n  api_key_env: KEY\n",
		},
		{
			name: "unknown provider type",
			yaml: "version: \"1.0\"\nprovider:\n  type: mainframe\n  api_key_env: KEY\n",
		},
		{
			name: "missing api key env",
			yaml: "version: \"1.0\"\nprovider:\n  type: groq\n",
		},
		{
			name: "timeout out of range",
			yaml: "version: \"1.0\"\nprovider:\n  type: groq\n  api_key_env: KEY\nlimits:\n  timeout_seconds: 9999\n",
		},
		{
			name: "retry attempts out of range",
			yaml: "version: \"1.0\"\nprovider:\n  type: groq\n  api_key_env: KEY\nretry:\n  max_attempts: 50\n",
		},
		{
			name: "not yaml",
			yaml: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadPipelineConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
