package testutils

// Canned model responses for pipeline tests. ValidEvaluationResponse is
// a complete, schema-conformant verdict; the others exercise the
// parser's tolerance and failure paths.
const (
	// ValidEvaluationResponse is a full verdict for a high-risk hiring
	// use case.
	ValidEvaluationResponse = `{
    "overall_score": 78,
    "risk_level": "HIGH",
    "risks": {
        "regulatory": {
            "level": "HIGH",
            "score": 85,
            "summary": "Automated employment decisions fall under the EU AI Act high-risk category and NYC Local Law 144 bias audit requirements. Deployment in the EU market triggers conformity assessment obligations.",
            "applicable_regulations": ["EU AI Act", "NYC Local Law 144", "GDPR Article 22"]
        },
        "bias": {
            "level": "HIGH",
            "score": 80,
            "summary": "Resume screening models trained on historical hiring data are prone to reproducing past discrimination. Protected characteristics can be inferred from proxy features.",
            "affected_groups": ["Women", "Older applicants", "Ethnic minorities"]
        },
        "privacy": {
            "level": "MEDIUM",
            "score": 60,
            "summary": "Candidate data includes PII subject to GDPR. Retention limits and lawful basis for automated processing must be established before launch.",
            "data_concerns": ["PII in resumes", "Cross-border transfers", "Retention policy undefined"]
        },
        "transparency": {
            "level": "HIGH",
            "score": 75,
            "summary": "Candidates must be notified of automated evaluation and offered human review. Current design provides no explanation of rejection decisions.",
            "requirements": ["Candidate notification", "Right to human review", "Decision explanation"]
        }
    },
    "recommended_actions": [
        {
            "priority": 1,
            "action": "Commission an independent bias audit before production deployment",
            "regulation": "NYC Local Law 144",
            "owner": "Head of People Analytics"
        },
        {
            "priority": 2,
            "action": "Implement candidate notification and human review workflow",
            "regulation": "EU AI Act Article 14",
            "owner": "Legal"
        },
        {
            "priority": 3,
            "action": "Define data retention schedule for candidate profiles",
            "regulation": "GDPR Article 5",
            "owner": "Data Protection Officer"
        }
    ],
    "executive_summary": "This hiring use case carries high regulatory and fairness risk driven by the EU AI Act and NYC bias audit rules. A bias audit and a human review workflow are prerequisites for launch. Privacy exposure is manageable with a defined retention policy."
}`

	// FencedEvaluationResponse wraps a minimal valid verdict in a
	// markdown code fence with a language tag, the way chat-tuned
	// models often reply despite instructions.
	FencedEvaluationResponse = "```json\n" + MinimalEvaluationResponse + "\n```"

	// MinimalEvaluationResponse omits all optional substructure; the
	// parser must fill neutral defaults.
	MinimalEvaluationResponse = `{"overall_score": 40, "risk_level": "LOW"}`

	// MalformedResponse is prose, not JSON.
	MalformedResponse = `The use case looks fine to me, low risk overall.`

	// TruncatedResponse is valid JSON cut off mid-stream, as happens
	// when the output token budget is exhausted.
	TruncatedResponse = `{"overall_score": 55, "risk_level": "MEDIUM", "risks": {"regulatory": {"level": "MED`

	// SchemaViolationResponse parses as JSON but breaks the contract
	// with an out-of-enum risk level.
	SchemaViolationResponse = `{"overall_score": 50, "risk_level": "CRITICAL"}`
)
