package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() UseCaseRecord {
	return UseCaseRecord{
		Name:         "Resume Screening Assistant",
		Department:   "Human Resources",
		Description:  "Ranks inbound resumes against job requirements and filters the candidate pool.",
		AITechniques: "NLP, gradient boosting",
		Markets:      []string{"EU", "US"},
		DataTypes:    []string{"Personal data", "Employment history"},
		Stage:        "Pilot",
	}
}

func TestUseCaseRecordValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid record passes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validRecord().Validate())
	})

	t.Run("optional fields may be blank", func(t *testing.T) {
		t.Parallel()
		record := validRecord()
		record.Department = ""
		record.AITechniques = ""
		record.Stage = ""
		assert.NoError(t, record.Validate())
	})

	tests := []struct {
		name      string
		mutate    func(*UseCaseRecord)
		violation string
	}{
		{
			name:      "blank name",
			mutate:    func(r *UseCaseRecord) { r.Name = "   " },
			violation: "name must not be empty",
		},
		{
			name:      "blank description",
			mutate:    func(r *UseCaseRecord) { r.Description = "" },
			violation: "description must not be empty",
		},
		{
			name:      "no markets",
			mutate:    func(r *UseCaseRecord) { r.Markets = nil },
			violation: "markets must contain at least one entry",
		},
		{
			name:      "blank market entry",
			mutate:    func(r *UseCaseRecord) { r.Markets = []string{"EU", " "} },
			violation: "markets must not contain blank entries",
		},
		{
			name:      "no data types",
			mutate:    func(r *UseCaseRecord) { r.DataTypes = []string{} },
			violation: "data_types must contain at least one entry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			record := validRecord()
			tt.mutate(&record)

			err := record.Validate()
			require.Error(t, err)

			var pe *PreconditionError
			require.ErrorAs(t, err, &pe)
			assert.Contains(t, pe.Violations, tt.violation)
		})
	}
}

func TestUseCaseRecordValidateAccumulates(t *testing.T) {
	t.Parallel()

	record := UseCaseRecord{}
	err := record.Validate()
	require.Error(t, err)

	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	// Every violation is reported at once, not just the first.
	assert.Len(t, pe.Violations, 4)
	assert.Equal(t, "use case record", pe.Entity)
}
