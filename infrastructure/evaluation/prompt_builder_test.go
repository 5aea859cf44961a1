package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parul-khanna/aigovlens/internal/domain"
)

func sampleRecord() domain.UseCaseRecord {
	return domain.UseCaseRecord{
		Name:         "Resume Screening Assistant",
		Department:   "Human Resources",
		Description:  "Ranks inbound resumes against job requirements.",
		AITechniques: "NLP, gradient boosting",
		Markets:      []string{"EU", "US"},
		DataTypes:    []string{"Personal data", "Employment history"},
		Stage:        "Pilot",
	}
}

func TestPromptBuilderIncludesEveryField(t *testing.T) {
	t.Parallel()

	builder, err := NewPromptBuilder()
	require.NoError(t, err)

	prompt, err := builder.Build(sampleRecord())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Name: Resume Screening Assistant")
	assert.Contains(t, prompt, "Department: Human Resources")
	assert.Contains(t, prompt, "Description: Ranks inbound resumes against job requirements.")
	assert.Contains(t, prompt, "AI Techniques: NLP, gradient boosting")
	assert.Contains(t, prompt, "Target Markets: EU, US")
	assert.Contains(t, prompt, "Data Types: Personal data, Employment history")
	assert.Contains(t, prompt, "Deployment Stage: Pilot")
}

func TestPromptBuilderNamesAllFourAxes(t *testing.T) {
	t.Parallel()

	builder, err := NewPromptBuilder()
	require.NoError(t, err)

	prompt, err := builder.Build(sampleRecord())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Regulatory Risk")
	assert.Contains(t, prompt, "Bias & Fairness Risk")
	assert.Contains(t, prompt, "Data Privacy Risk")
	assert.Contains(t, prompt, "Transparency Risk")

	// The embedded skeleton keys must match the result schema exactly.
	for _, key := range []string{
		`"overall_score"`, `"risk_level"`, `"risks"`,
		`"regulatory"`, `"bias"`, `"privacy"`, `"transparency"`,
		`"applicable_regulations"`, `"affected_groups"`,
		`"data_concerns"`, `"requirements"`,
		`"recommended_actions"`, `"executive_summary"`,
	} {
		assert.Contains(t, prompt, key)
	}
}

func TestPromptBuilderSubstitutesNotSpecified(t *testing.T) {
	t.Parallel()

	builder, err := NewPromptBuilder()
	require.NoError(t, err)

	record := sampleRecord()
	record.Department = "  "
	record.AITechniques = ""
	record.Stage = ""

	prompt, err := builder.Build(record)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Department: "+domain.NotSpecified)
	assert.Contains(t, prompt, "AI Techniques: "+domain.NotSpecified)
	assert.Contains(t, prompt, "Deployment Stage: "+domain.NotSpecified)
}

func TestPromptBuilderIsDeterministic(t *testing.T) {
	t.Parallel()

	builder, err := NewPromptBuilder()
	require.NoError(t, err)

	first, err := builder.Build(sampleRecord())
	require.NoError(t, err)
	second, err := builder.Build(sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPromptBuilderRejectsInvalidRecord(t *testing.T) {
	t.Parallel()

	builder, err := NewPromptBuilder()
	require.NoError(t, err)

	record := sampleRecord()
	record.Name = ""
	record.Markets = nil

	_, err = builder.Build(record)
	require.Error(t, err)

	var pe *domain.PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, pe.Violations, 2)
}

func TestSystemInstructionPinsJSONOutput(t *testing.T) {
	t.Parallel()

	assert.True(t, strings.Contains(SystemInstruction, "JSON"))
}
