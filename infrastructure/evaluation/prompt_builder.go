// Package evaluation implements the core of the governance pipeline:
// deterministic prompt construction from a use case record, invocation
// of the completion service, and tolerant extraction plus strict
// validation of the model's JSON verdict.
package evaluation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/parul-khanna/aigovlens/internal/domain"
)

// SystemInstruction is the fixed system prompt sent with every
// evaluation request.
const SystemInstruction = "You are an AI governance expert. Return only valid JSON, no markdown formatting."

// evaluationPromptTemplate enumerates every use case field verbatim,
// names the four evaluation axes with keys that match the result
// schema exactly, and embeds the literal JSON skeleton the model must
// fill in.
const evaluationPromptTemplate = `You are an expert AI governance analyst. Evaluate the following AI use case against regulatory frameworks and risk criteria.

## USE CASE DETAILS:
Name: {{.Name}}
Department: {{.Department}}
Description: {{.Description}}
AI Techniques: {{.AITechniques}}
Target Markets: {{.Markets}}
Data Types: {{.DataTypes}}
Deployment Stage: {{.Stage}}

## EVALUATE AGAINST:
1. **Regulatory Risk**: EU AI Act, Colorado AI Act, NYC Local Law 144, GDPR implications
2. **Bias & Fairness Risk**: Potential for discrimination, affected groups, historical bias in domain
3. **Data Privacy Risk**: PII handling, consent, data retention, cross-border transfers
4. **Transparency Risk**: Explainability requirements, user notification, right to human review

## RETURN JSON ONLY (no markdown, no explanation outside JSON):
{
    "overall_score": <0-100 integer>,
    "risk_level": "<HIGH|MEDIUM|LOW>",
    "risks": {
        "regulatory": {
            "level": "<HIGH|MEDIUM|LOW>",
            "score": <0-100>,
            "summary": "<2-3 sentence explanation>",
            "applicable_regulations": ["<list of specific regulations that apply>"]
        },
        "bias": {
            "level": "<HIGH|MEDIUM|LOW>",
            "score": <0-100>,
            "summary": "<2-3 sentence explanation>",
            "affected_groups": ["<list of potentially affected groups>"]
        },
        "privacy": {
            "level": "<HIGH|MEDIUM|LOW>",
            "score": <0-100>,
            "summary": "<2-3 sentence explanation>",
            "data_concerns": ["<list of specific data concerns>"]
        },
        "transparency": {
            "level": "<HIGH|MEDIUM|LOW>",
            "score": <0-100>,
            "summary": "<2-3 sentence explanation>",
            "requirements": ["<list of transparency requirements>"]
        }
    },
    "recommended_actions": [
        {
            "priority": 1,
            "action": "<specific action to take>",
            "regulation": "<relevant regulation or best practice>",
            "owner": "<suggested responsible party>"
        }
    ],
    "executive_summary": "<3-4 sentence summary suitable for leadership>"
}`

// PromptBuilder renders evaluation prompts from use case records. It
// is pure: no I/O, no randomness, identical records produce identical
// prompts. The template is compiled once at construction.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder compiles the evaluation prompt template.
func NewPromptBuilder() (*PromptBuilder, error) {
	tmpl, err := template.New("evaluationPrompt").Parse(evaluationPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse evaluation prompt template: %w", err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// promptData is the flattened view of a record fed to the template.
// Multi-valued fields are serialized as comma-joined lists.
type promptData struct {
	Name         string
	Department   string
	Description  string
	AITechniques string
	Markets      string
	DataTypes    string
	Stage        string
}

// Build renders the prompt for a record. The record must already
// satisfy its preconditions; Build validates them again and returns
// the PreconditionError unwrapped rather than producing a prompt from
// a malformed record.
func (b *PromptBuilder) Build(record domain.UseCaseRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}

	data := promptData{
		Name:         record.Name,
		Department:   orNotSpecified(record.Department),
		Description:  record.Description,
		AITechniques: orNotSpecified(record.AITechniques),
		Markets:      strings.Join(record.Markets, ", "),
		DataTypes:    strings.Join(record.DataTypes, ", "),
		Stage:        orNotSpecified(record.Stage),
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute evaluation prompt template: %w", err)
	}
	return buf.String(), nil
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.NotSpecified
	}
	return s
}
