// Package domain defines the core data model for AI governance
// evaluations: the use case under review, the structured evaluation
// verdict returned by the language model, and the closed set of risk
// categories and levels the verdict is expressed in.
//
// The package is dependency-free by design. Validation of external
// input happens at the infrastructure edges; the types here only
// encode structure and invariants.
package domain

import "strings"

// RiskLevel classifies the severity assigned to a risk category or to
// the overall use case.
type RiskLevel string

// The enumerated risk levels. RiskUnknown is never produced by the
// upstream model contract; it is the neutral value substituted when a
// category is absent from an otherwise valid response.
const (
	RiskHigh    RiskLevel = "HIGH"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskLow     RiskLevel = "LOW"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// ParseRiskLevel normalizes a raw level string to a RiskLevel.
// Matching is case-insensitive and ignores surrounding whitespace.
// It returns false for any value outside {HIGH, MEDIUM, LOW}; callers
// decide whether that is a schema violation (present field) or a
// missing-field default.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskHigh:
		return RiskHigh, true
	case RiskMedium:
		return RiskMedium, true
	case RiskLow:
		return RiskLow, true
	default:
		return RiskUnknown, false
	}
}

// Valid reports whether the level is one of the three contract values.
func (l RiskLevel) Valid() bool {
	return l == RiskHigh || l == RiskMedium || l == RiskLow
}

// RiskCategory identifies one of the four fixed evaluation axes.
// The set is closed; free-form string keys from the model response are
// mapped onto these constants during parsing, which eliminates
// typo-driven lookup failures downstream.
type RiskCategory string

const (
	CategoryRegulatory   RiskCategory = "regulatory"
	CategoryBias         RiskCategory = "bias"
	CategoryPrivacy      RiskCategory = "privacy"
	CategoryTransparency RiskCategory = "transparency"
)

// Categories lists the four evaluation axes in canonical display order.
var Categories = [4]RiskCategory{
	CategoryRegulatory,
	CategoryBias,
	CategoryPrivacy,
	CategoryTransparency,
}

// CategoryInfo carries the presentation and schema metadata associated
// with a risk category: how it is titled in documents, which icon
// represents it, what kind of evidence it collects, and under which
// JSON key the model reports that evidence.
type CategoryInfo struct {
	// Title is the human-readable category name used in headings.
	Title string

	// Icon is the pictogram shown next to the category in rich UIs.
	Icon string

	// EvidenceKind names what the category's evidence list contains.
	EvidenceKind string

	// EvidenceKey is the JSON field carrying the evidence list in the
	// model response for this category.
	EvidenceKey string
}

var categoryTable = map[RiskCategory]CategoryInfo{
	CategoryRegulatory: {
		Title:        "Regulatory",
		Icon:         "🏛️",
		EvidenceKind: "applicable regulations",
		EvidenceKey:  "applicable_regulations",
	},
	CategoryBias: {
		Title:        "Bias",
		Icon:         "⚖️",
		EvidenceKind: "affected groups",
		EvidenceKey:  "affected_groups",
	},
	CategoryPrivacy: {
		Title:        "Privacy",
		Icon:         "🔒",
		EvidenceKind: "data concerns",
		EvidenceKey:  "data_concerns",
	},
	CategoryTransparency: {
		Title:        "Transparency",
		Icon:         "👁️",
		EvidenceKind: "transparency requirements",
		EvidenceKey:  "requirements",
	},
}

// Info returns the metadata for a category. The boolean is false for
// keys outside the closed set.
func (c RiskCategory) Info() (CategoryInfo, bool) {
	info, ok := categoryTable[c]
	return info, ok
}

// Title returns the display title for the category, falling back to
// the raw key for unknown categories.
func (c RiskCategory) Title() string {
	if info, ok := categoryTable[c]; ok {
		return info.Title
	}
	return string(c)
}
