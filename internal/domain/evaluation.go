package domain

import "time"

// RiskAssessment is the model's judgment for a single risk category.
type RiskAssessment struct {
	// Level is the severity assigned to this category. RiskUnknown
	// marks a category the response omitted.
	Level RiskLevel `json:"level" validate:"required,oneof=HIGH MEDIUM LOW UNKNOWN"`

	// Score is the category risk score on a 0-100 scale.
	Score int `json:"score" validate:"min=0,max=100"`

	// Summary is the model's short explanation, typically two to
	// three sentences. Length is not enforced.
	Summary string `json:"summary"`

	// Evidence is the category-specific supporting list: regulations,
	// affected groups, data concerns, or transparency requirements
	// depending on the category. The parser fills an empty slice for
	// categories without evidence, and it serializes as [] so exports
	// decode back to the same value.
	Evidence []string `json:"evidence"`
}

// Action is a single recommended remediation step.
type Action struct {
	// Priority orders actions by urgency; 1 is most urgent. Zero
	// means the response did not assign one.
	Priority int `json:"priority" validate:"min=0"`

	// Action describes the step to take.
	Action string `json:"action"`

	// Regulation names the regulation or best practice motivating
	// the action.
	Regulation string `json:"regulation"`

	// Owner is the suggested responsible party.
	Owner string `json:"owner"`
}

// EvaluationResult is the validated verdict produced from a model
// response. It is immutable after parsing: the report renderer and the
// export serializer both read it and neither may mutate it.
type EvaluationResult struct {
	// OverallScore is the aggregate risk score on a 0-100 scale.
	OverallScore int `json:"overall_score" validate:"min=0,max=100"`

	// RiskLevel is the overall severity classification.
	RiskLevel RiskLevel `json:"risk_level" validate:"required,oneof=HIGH MEDIUM LOW UNKNOWN"`

	// Risks holds one assessment per fixed category. The parser
	// guarantees all four categories are present, substituting a
	// neutral RiskUnknown assessment for any the response omitted.
	Risks map[RiskCategory]RiskAssessment `json:"risks" validate:"required,dive"`

	// RecommendedActions lists remediation steps in the order the
	// model produced them. May be empty.
	RecommendedActions []Action `json:"recommended_actions" validate:"dive"`

	// ExecutiveSummary is a leadership-facing summary. May be empty.
	ExecutiveSummary string `json:"executive_summary"`
}

// Assessment returns the assessment for a category, or a neutral
// unknown assessment if the category is absent. The parser normally
// guarantees presence; this keeps renderers total regardless.
func (r EvaluationResult) Assessment(c RiskCategory) RiskAssessment {
	if a, ok := r.Risks[c]; ok {
		return a
	}
	return RiskAssessment{Level: RiskUnknown, Evidence: []string{}}
}

// ExportBundle is the canonical exported shape combining the use case,
// its evaluation, and the generation timestamp.
type ExportBundle struct {
	UseCase     UseCaseRecord    `json:"use_case"`
	Evaluation  EvaluationResult `json:"evaluation"`
	GeneratedAt time.Time        `json:"generated_at"`
}
