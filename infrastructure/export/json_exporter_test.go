package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parul-khanna/aigovlens/infrastructure/evaluation"
	"github.com/parul-khanna/aigovlens/internal/domain"
	"github.com/parul-khanna/aigovlens/internal/testutils"
)

func sampleBundle() domain.ExportBundle {
	return domain.ExportBundle{
		UseCase: domain.UseCaseRecord{
			Name:         "Resume Screening Assistant",
			Department:   "Human Resources",
			Description:  "Ranks inbound resumes against job requirements.",
			AITechniques: "NLP",
			Markets:      []string{"EU", "US"},
			DataTypes:    []string{"Personal data"},
			Stage:        "Pilot",
		},
		Evaluation: domain.EvaluationResult{
			OverallScore: 78,
			RiskLevel:    domain.RiskHigh,
			Risks: map[domain.RiskCategory]domain.RiskAssessment{
				domain.CategoryRegulatory:   {Level: domain.RiskHigh, Score: 85, Summary: "EU AI Act applies.", Evidence: []string{"EU AI Act"}},
				domain.CategoryBias:         {Level: domain.RiskHigh, Score: 80, Evidence: []string{"Women"}},
				domain.CategoryPrivacy:      {Level: domain.RiskMedium, Score: 60},
				domain.CategoryTransparency: {Level: domain.RiskUnknown},
			},
			RecommendedActions: []domain.Action{
				{Priority: 1, Action: "Commission a bias audit", Regulation: "NYC Local Law 144", Owner: "HR"},
			},
			ExecutiveSummary: "High risk, bias audit required.",
		},
		GeneratedAt: time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	exporter := NewJSONExporter()
	data, err := exporter.Export(sampleBundle())
	require.NoError(t, err)

	var decoded domain.ExportBundle
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleBundle(), decoded)
}

// Parser output fills empty evidence slices for omitted categories;
// those must serialize as [] so decoding the export reproduces the
// bundle exactly.
func TestExportRoundTripParsedResult(t *testing.T) {
	t.Parallel()

	result, err := evaluation.NewResponseParser().Parse(testutils.MinimalEvaluationResponse)
	require.NoError(t, err)

	bundle := domain.ExportBundle{
		UseCase:     sampleBundle().UseCase,
		Evaluation:  result,
		GeneratedAt: time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC),
	}

	data, err := NewJSONExporter().Export(bundle)
	require.NoError(t, err)

	var decoded domain.ExportBundle
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, bundle, decoded)

	for _, category := range domain.Categories {
		assert.NotNil(t, decoded.Evaluation.Risks[category].Evidence, category)
	}
}

func TestExportShape(t *testing.T) {
	t.Parallel()

	exporter := NewJSONExporter()
	data, err := exporter.Export(sampleBundle())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	// Exactly the three canonical sections.
	assert.Len(t, raw, 3)
	assert.Contains(t, raw, "use_case")
	assert.Contains(t, raw, "evaluation")
	assert.Contains(t, raw, "generated_at")

	// The timestamp serializes as RFC 3339.
	var ts string
	require.NoError(t, json.Unmarshal(raw["generated_at"], &ts))
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(sampleBundle().GeneratedAt))
}

func TestExportIsIndented(t *testing.T) {
	t.Parallel()

	exporter := NewJSONExporter()
	data, err := exporter.Export(sampleBundle())
	require.NoError(t, err)

	assert.Contains(t, string(data), "\n  \"use_case\"")
}

func TestExportScoreAppearsVerbatim(t *testing.T) {
	t.Parallel()

	exporter := NewJSONExporter()
	data, err := exporter.Export(sampleBundle())
	require.NoError(t, err)

	assert.Contains(t, string(data), `"overall_score": 78`)
	assert.Contains(t, string(data), `"risk_level": "HIGH"`)
}
