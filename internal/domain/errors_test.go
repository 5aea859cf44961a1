package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorSentinels(t *testing.T) {
	t.Parallel()

	malformed := NewMalformedJSONError("empty response", nil)
	assert.ErrorIs(t, malformed, ErrMalformedJSON)
	assert.NotErrorIs(t, malformed, ErrSchemaViolation)

	violation := NewSchemaViolationError("overall_score must be in [0,100]", nil)
	assert.ErrorIs(t, violation, ErrSchemaViolation)
	assert.NotErrorIs(t, violation, ErrMalformedJSON)
}

func TestParseErrorWrapsDecodeError(t *testing.T) {
	t.Parallel()

	decodeErr := json.Unmarshal([]byte("{"), &map[string]any{})
	require.Error(t, decodeErr)

	perr := NewMalformedJSONError("response is not valid JSON", decodeErr)

	// The sentinel match survives a wrapped cause.
	assert.ErrorIs(t, perr, ErrMalformedJSON)

	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, perr, &syntaxErr)
}

func TestParseErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewSchemaViolationError("risk_level must be one of HIGH, MEDIUM, LOW", nil)
	assert.Contains(t, err.Error(), "schema_violation")
	assert.Contains(t, err.Error(), "risk_level")
}

func TestParseErrorKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "malformed_json", ParseMalformedJSON.String())
	assert.Equal(t, "schema_violation", ParseSchemaViolation.String())
	assert.Equal(t, "unknown", ParseErrorKind(99).String())
}

func TestPreconditionErrorMessages(t *testing.T) {
	t.Parallel()

	single := NewPreconditionError("use case record")
	single.Add("name must not be empty")
	assert.Equal(t, "precondition failed for use case record: name must not be empty", single.Error())

	multi := NewPreconditionError("use case record")
	multi.Add("name must not be empty")
	multi.Add("markets must contain at least one entry")
	assert.Contains(t, multi.Error(), "preconditions failed")
	assert.True(t, multi.HasViolations())

	var target *PreconditionError
	assert.True(t, errors.As(error(multi), &target))
}
