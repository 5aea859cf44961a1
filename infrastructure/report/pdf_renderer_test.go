package report

import (
	"fmt"
	"testing"
	"time"

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
		DataTypes:    []string{"Personal data"},
		Stage:        "Pilot",
	}
}

func sampleResult() domain.EvaluationResult {
	return domain.EvaluationResult{
		OverallScore: 78,
		RiskLevel:    domain.RiskHigh,
		Risks: map[domain.RiskCategory]domain.RiskAssessment{
			domain.CategoryRegulatory:   {Level: domain.RiskHigh, Score: 85, Summary: "Covered by the EU AI Act."},
			domain.CategoryBias:         {Level: domain.RiskHigh, Score: 80, Summary: "Historical hiring bias."},
			domain.CategoryPrivacy:      {Level: domain.RiskMedium, Score: 60, Summary: "PII in resumes."},
			domain.CategoryTransparency: {Level: domain.RiskUnknown, Evidence: []string{}},
		},
		RecommendedActions: []domain.Action{
			{Priority: 1, Action: "Commission a bias audit", Regulation: "NYC Local Law 144", Owner: "HR"},
		},
		ExecutiveSummary: "High risk use case requiring a bias audit before launch.",
	}
}

var fixedTime = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestRenderProducesPDF(t *testing.T) {
	t.Parallel()

	renderer := NewPDFRenderer()
	data, err := renderer.Render(sampleRecord(), sampleResult(), fixedTime)
	require.NoError(t, err)

	require.Greater(t, len(data), 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	renderer := NewPDFRenderer()
	first, err := renderer.Render(sampleRecord(), sampleResult(), fixedTime)
	require.NoError(t, err)
	second, err := renderer.Render(sampleRecord(), sampleResult(), fixedTime)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderHandlesEmptyActionsAndUnknownLevels(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.RecommendedActions = nil
	result.RiskLevel = domain.RiskUnknown

	renderer := NewPDFRenderer()
	data, err := renderer.Render(sampleRecord(), result, fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderHandlesNonLatinText(t *testing.T) {
	t.Parallel()

	record := sampleRecord()
	record.Name = "Bewerbungs-Screening für München"
	record.Description = "Évaluation des candidatures — conformité RGPD."

	renderer := NewPDFRenderer()
	data, err := renderer.Render(record, sampleResult(), fixedTime)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestActionRowsCapAndTruncation(t *testing.T) {
	t.Parallel()

	actions := make([]domain.Action, 10)
	for i := range actions {
		actions[i] = domain.Action{
			Priority:   i + 1,
			Action:     fmt.Sprintf("Action %d", i+1),
			Regulation: "GDPR",
			Owner:      "Legal",
		}
	}

	rows := actionRows(actions)
	require.Len(t, rows, MaxActionRows)
	assert.Equal(t, "P1", rows[0][0])
	assert.Equal(t, "P6", rows[5][0])
}

func TestActionRowsUnassignedPriority(t *testing.T) {
	t.Parallel()

	rows := actionRows([]domain.Action{{Action: "Document the model"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "P-", rows[0][0])
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"shorter than cap", "short", 10, "short"},
		{"exactly at cap", "12345", 5, "12345"},
		{"over cap", "123456789", 5, "12345"},
		{"multi-byte runes kept whole", "aéîöü12345", 5, "aéîöü"},
		{"zero cap", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateRunes(tt.input, tt.max))
		})
	}
}

func TestLevelColors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, rgb{220, 38, 38}, levelColor(domain.RiskHigh))
	assert.Equal(t, rgb{217, 119, 6}, levelColor(domain.RiskMedium))
	assert.Equal(t, rgb{5, 150, 105}, levelColor(domain.RiskLow))
	// Unknown and out-of-set levels render neutral.
	assert.Equal(t, colorSubtitle, levelColor(domain.RiskUnknown))
	assert.Equal(t, colorSubtitle, levelColor(domain.RiskLevel("SEVERE")))
}
