package domain

import "strings"

// NotSpecified is the placeholder recorded for optional descriptive
// fields the submitter left blank.
const NotSpecified = "Not specified"

// UseCaseRecord is the structured description of an AI system
// submitted for risk evaluation. It is created by the collecting
// collaborator before the pipeline runs and is never mutated
// afterwards; a single pipeline invocation owns it exclusively.
type UseCaseRecord struct {
	// Name is the short identifier for the use case, e.g.
	// "Customer Churn Prediction Model".
	Name string `json:"name"`

	// Department is the owning business unit. Free text is accepted;
	// the evaluation layer canonicalizes it against a known catalog.
	Department string `json:"department"`

	// Description explains what the system does, what decisions it
	// makes or supports, and who is affected.
	Description string `json:"description"`

	// AITechniques names the AI/ML techniques involved.
	// May be NotSpecified.
	AITechniques string `json:"ai_techniques"`

	// Markets lists the target jurisdictions. At least one required.
	Markets []string `json:"markets"`

	// DataTypes lists the categories of data involved.
	// At least one required.
	DataTypes []string `json:"data_types"`

	// Stage is the deployment stage. May be NotSpecified.
	Stage string `json:"stage"`
}

// Validate checks the record's preconditions: non-empty name and
// description, and at least one non-blank market and data type.
// It returns a *PreconditionError enumerating every violation, or nil.
// A record that fails validation must never reach the completion
// service.
func (r UseCaseRecord) Validate() error {
	pe := NewPreconditionError("use case record")

	if strings.TrimSpace(r.Name) == "" {
		pe.Add("name must not be empty")
	}
	if strings.TrimSpace(r.Description) == "" {
		pe.Add("description must not be empty")
	}
	validateTags(pe, "markets", r.Markets)
	validateTags(pe, "data_types", r.DataTypes)

	if pe.HasViolations() {
		return pe
	}
	return nil
}

func validateTags(pe *PreconditionError, field string, tags []string) {
	if len(tags) == 0 {
		pe.Add(field + " must contain at least one entry")
		return
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			pe.Add(field + " must not contain blank entries")
			return
		}
	}
}
