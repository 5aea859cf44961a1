package evaluation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/parul-khanna/aigovlens/internal/domain"
)

// ResponseParser turns raw model output into a validated
// domain.EvaluationResult, or a typed *domain.ParseError. It never
// returns a partial result.
//
// The contract is lenient on missing substructure and strict on
// present fields: an absent risk category or action list is normalized
// to a neutral default, while a present field with the wrong type, an
// out-of-range score, or an out-of-enum level fails the whole parse as
// a schema violation. The upstream generator is non-deterministic
// text, so the parser degrades optional richness gracefully but never
// trusts a core decision field it cannot validate.
type ResponseParser struct {
	validate *validator.Validate
}

// NewResponseParser creates a parser with a configured validator.
func NewResponseParser() *ResponseParser {
	return &ResponseParser{validate: validator.New()}
}

// StripCodeFence removes a surrounding markdown code fence and an
// optional leading "json" language tag from text, returning the
// interior trimmed. Text without a leading fence is returned trimmed
// and otherwise untouched, which makes the operation idempotent.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	interior := text[3:]
	if end := strings.Index(interior, "```"); end != -1 {
		interior = interior[:end]
	}

	interior = strings.TrimSpace(interior)
	// The language tag sits between the fence and the payload; a JSON
	// payload always starts with a brace or bracket, so the prefix
	// strip cannot eat payload text.
	interior = strings.TrimPrefix(interior, "json")

	return strings.TrimSpace(interior)
}

// Parse validates raw model output against the result schema.
func (p *ResponseParser) Parse(raw string) (domain.EvaluationResult, error) {
	text := StripCodeFence(raw)
	if text == "" {
		return domain.EvaluationResult{}, domain.NewMalformedJSONError("empty response", nil)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			// Valid JSON, wrong shape: the response decoded but is not
			// an object.
			return domain.EvaluationResult{}, domain.NewSchemaViolationError("top-level value is not a JSON object", err)
		}
		return domain.EvaluationResult{}, domain.NewMalformedJSONError("response is not valid JSON", err)
	}

	result := domain.EvaluationResult{
		RiskLevel: domain.RiskUnknown,
		Risks:     make(map[domain.RiskCategory]domain.RiskAssessment, len(domain.Categories)),
	}

	if rawScore, ok := top["overall_score"]; ok {
		score, perr := decodeScore(rawScore, "overall_score")
		if perr != nil {
			return domain.EvaluationResult{}, perr
		}
		result.OverallScore = score
	}

	if rawLevel, ok := top["risk_level"]; ok {
		level, perr := decodeLevel(rawLevel, "risk_level")
		if perr != nil {
			return domain.EvaluationResult{}, perr
		}
		result.RiskLevel = level
	}

	if perr := p.parseRisks(top["risks"], &result); perr != nil {
		return domain.EvaluationResult{}, perr
	}

	if rawActions, ok := top["recommended_actions"]; ok {
		actions, perr := parseActions(rawActions)
		if perr != nil {
			return domain.EvaluationResult{}, perr
		}
		result.RecommendedActions = actions
	} else {
		result.RecommendedActions = []domain.Action{}
	}

	if rawSummary, ok := top["executive_summary"]; ok {
		summary, perr := decodeString(rawSummary, "executive_summary")
		if perr != nil {
			return domain.EvaluationResult{}, perr
		}
		result.ExecutiveSummary = summary
	}

	// Final invariant check over the assembled record. Anything the
	// field-level checks let slip through is still a schema violation.
	if err := p.validate.Struct(result); err != nil {
		return domain.EvaluationResult{}, domain.NewSchemaViolationError("result failed structural validation", err)
	}

	return result, nil
}

// parseRisks fills all four fixed categories, substituting a neutral
// unknown assessment for any the response omitted. rawRisks may be nil
// when the response had no risks key at all.
func (p *ResponseParser) parseRisks(rawRisks json.RawMessage, result *domain.EvaluationResult) *domain.ParseError {
	entries := map[string]json.RawMessage{}
	if rawRisks != nil {
		if err := json.Unmarshal(rawRisks, &entries); err != nil {
			return domain.NewSchemaViolationError("risks is not a JSON object", err)
		}
	}

	for _, category := range domain.Categories {
		rawEntry, ok := entries[string(category)]
		if !ok {
			result.Risks[category] = domain.RiskAssessment{
				Level:    domain.RiskUnknown,
				Evidence: []string{},
			}
			continue
		}

		assessment, perr := parseAssessment(rawEntry, category)
		if perr != nil {
			return perr
		}
		result.Risks[category] = assessment
	}

	return nil
}

func parseAssessment(raw json.RawMessage, category domain.RiskCategory) (domain.RiskAssessment, *domain.ParseError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.RiskAssessment{}, domain.NewSchemaViolationError(
			fmt.Sprintf("risks.%s is not a JSON object", category), err)
	}

	assessment := domain.RiskAssessment{
		Level:    domain.RiskUnknown,
		Evidence: []string{},
	}

	if rawLevel, ok := fields["level"]; ok {
		level, perr := decodeLevel(rawLevel, fmt.Sprintf("risks.%s.level", category))
		if perr != nil {
			return domain.RiskAssessment{}, perr
		}
		assessment.Level = level
	}

	if rawScore, ok := fields["score"]; ok {
		score, perr := decodeScore(rawScore, fmt.Sprintf("risks.%s.score", category))
		if perr != nil {
			return domain.RiskAssessment{}, perr
		}
		assessment.Score = score
	}

	if rawSummary, ok := fields["summary"]; ok {
		summary, perr := decodeString(rawSummary, fmt.Sprintf("risks.%s.summary", category))
		if perr != nil {
			return domain.RiskAssessment{}, perr
		}
		assessment.Summary = summary
	}

	// Evidence lives under a category-specific key in the model
	// schema; a generic "evidence" key is accepted as a fallback.
	info, _ := category.Info()
	rawEvidence, ok := fields[info.EvidenceKey]
	if !ok {
		rawEvidence, ok = fields["evidence"]
	}
	if ok {
		var evidence []string
		if err := json.Unmarshal(rawEvidence, &evidence); err != nil {
			return domain.RiskAssessment{}, domain.NewSchemaViolationError(
				fmt.Sprintf("risks.%s.%s is not a list of strings", category, info.EvidenceKey), err)
		}
		assessment.Evidence = evidence
	}

	return assessment, nil
}

func parseActions(raw json.RawMessage) ([]domain.Action, *domain.ParseError) {
	var rawActions []json.RawMessage
	if err := json.Unmarshal(raw, &rawActions); err != nil {
		return nil, domain.NewSchemaViolationError("recommended_actions is not a JSON array", err)
	}

	actions := make([]domain.Action, 0, len(rawActions))
	for i, rawAction := range rawActions {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rawAction, &fields); err != nil {
			return nil, domain.NewSchemaViolationError(
				fmt.Sprintf("recommended_actions[%d] is not a JSON object", i), err)
		}

		var action domain.Action

		if rawPriority, ok := fields["priority"]; ok {
			var priority int
			if err := json.Unmarshal(rawPriority, &priority); err != nil {
				return nil, domain.NewSchemaViolationError(
					fmt.Sprintf("recommended_actions[%d].priority is not an integer", i), err)
			}
			if priority < 1 {
				return nil, domain.NewSchemaViolationError(
					fmt.Sprintf("recommended_actions[%d].priority must be a positive integer, got %d", i, priority), nil)
			}
			action.Priority = priority
		}

		for field, dst := range map[string]*string{
			"action":     &action.Action,
			"regulation": &action.Regulation,
			"owner":      &action.Owner,
		} {
			rawField, ok := fields[field]
			if !ok {
				continue
			}
			value, perr := decodeString(rawField, fmt.Sprintf("recommended_actions[%d].%s", i, field))
			if perr != nil {
				return nil, perr
			}
			*dst = value
		}

		actions = append(actions, action)
	}

	return actions, nil
}

func decodeScore(raw json.RawMessage, field string) (int, *domain.ParseError) {
	var score int
	if err := json.Unmarshal(raw, &score); err != nil {
		return 0, domain.NewSchemaViolationError(field+" is not an integer", err)
	}
	if score < 0 || score > 100 {
		return 0, domain.NewSchemaViolationError(
			fmt.Sprintf("%s must be in [0,100], got %d", field, score), nil)
	}
	return score, nil
}

func decodeLevel(raw json.RawMessage, field string) (domain.RiskLevel, *domain.ParseError) {
	var levelStr string
	if err := json.Unmarshal(raw, &levelStr); err != nil {
		return domain.RiskUnknown, domain.NewSchemaViolationError(field+" is not a string", err)
	}
	level, ok := domain.ParseRiskLevel(levelStr)
	if !ok {
		return domain.RiskUnknown, domain.NewSchemaViolationError(
			fmt.Sprintf("%s must be one of HIGH, MEDIUM, LOW, got %q", field, levelStr), nil)
	}
	return level, nil
}

func decodeString(raw json.RawMessage, field string) (string, *domain.ParseError) {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", domain.NewSchemaViolationError(field+" is not a string", err)
	}
	return value, nil
}
