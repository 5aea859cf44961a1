package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the evaluation pipeline.
var (
	// ErrMalformedJSON indicates the model response was not valid JSON
	// after fence stripping.
	ErrMalformedJSON = errors.New("malformed JSON in model response")

	// ErrSchemaViolation indicates a present response field had the
	// wrong type or an out-of-range/out-of-enum value.
	ErrSchemaViolation = errors.New("model response violates result schema")
)

// ParseErrorKind discriminates the two terminal parse failures.
type ParseErrorKind int

const (
	// ParseMalformedJSON marks responses that fail JSON decoding.
	ParseMalformedJSON ParseErrorKind = iota

	// ParseSchemaViolation marks responses that decode but contain a
	// present field with an invalid type, range, or enum value.
	ParseSchemaViolation
)

// String returns a stable identifier for the kind.
func (k ParseErrorKind) String() string {
	switch k {
	case ParseMalformedJSON:
		return "malformed_json"
	case ParseSchemaViolation:
		return "schema_violation"
	default:
		return "unknown"
	}
}

// ParseError reports why a model response could not be turned into an
// EvaluationResult. No partial result accompanies it: parsing either
// yields a fully validated record or a ParseError.
type ParseError struct {
	// Kind discriminates malformed JSON from schema violations.
	Kind ParseErrorKind

	// Detail describes the offending field or decode failure.
	Detail string

	// Err is the underlying decode or validation error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error [%s]", e.Kind)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap maps the kind onto its sentinel so callers can use errors.Is
// without inspecting the struct.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	switch e.Kind {
	case ParseMalformedJSON:
		return ErrMalformedJSON
	case ParseSchemaViolation:
		return ErrSchemaViolation
	default:
		return nil
	}
}

// Is reports whether target matches this error's sentinel, regardless
// of any wrapped decode error.
func (e *ParseError) Is(target error) bool {
	switch e.Kind {
	case ParseMalformedJSON:
		return target == ErrMalformedJSON
	case ParseSchemaViolation:
		return target == ErrSchemaViolation
	default:
		return false
	}
}

// NewMalformedJSONError creates a ParseError for undecodable text.
func NewMalformedJSONError(detail string, err error) *ParseError {
	return &ParseError{Kind: ParseMalformedJSON, Detail: detail, Err: err}
}

// NewSchemaViolationError creates a ParseError for a present field
// with an invalid type, range, or enum value.
func NewSchemaViolationError(detail string, err error) *ParseError {
	return &ParseError{Kind: ParseSchemaViolation, Detail: detail, Err: err}
}

// PreconditionError reports a malformed or incomplete input record.
// It is surfaced before any network call and can accumulate multiple
// violations so the caller sees everything wrong at once.
type PreconditionError struct {
	// Entity names what failed validation.
	Entity string

	// Violations lists the individual precondition failures.
	Violations []string
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("precondition failed for %s: %s", e.Entity, e.Violations[0])
	}
	return fmt.Sprintf("preconditions failed for %s: %v", e.Entity, e.Violations)
}

// Add records another violation.
func (e *PreconditionError) Add(msg string) { e.Violations = append(e.Violations, msg) }

// HasViolations reports whether any violation was recorded.
func (e *PreconditionError) HasViolations() bool { return len(e.Violations) > 0 }

// NewPreconditionError creates an empty PreconditionError for entity.
func NewPreconditionError(entity string) *PreconditionError {
	return &PreconditionError{Entity: entity, Violations: make([]string, 0)}
}
