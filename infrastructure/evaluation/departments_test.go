package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalDepartment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact match", "Finance", "Finance"},
		{"case-insensitive exact", "finance", "Finance"},
		{"exact with whitespace", "  Marketing  ", "Marketing"},
		{"alias hr", "hr", "Human Resources"},
		{"alias HR uppercase", "HR", "Human Resources"},
		{"alias it", "it", "IT / Technology"},
		{"alias tech", "tech", "IT / Technology"},
		{"alias compliance", "compliance", "Risk & Compliance"},
		{"alias support", "support", "Customer Service"},
		{"fuzzy typo finance", "Finanace", "Finance"},
		{"fuzzy typo marketing", "Marketting", "Marketing"},
		{"fuzzy typo operations", "Operatons", "Operations"},
		{"no plausible match keeps input", "Astrology", "Astrology"},
		{"unmatched input trimmed", "  Quantum Lab  ", "Quantum Lab"},
		{"blank", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CanonicalDepartment(tt.input))
		})
	}
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, similarity("finance", "finance"))
	assert.Equal(t, 1.0, similarity("", ""))
	assert.InDelta(t, 0.875, similarity("finanace", "finance"), 0.001)
	assert.Less(t, similarity("astrology", "finance"), departmentMatchThreshold)
}
