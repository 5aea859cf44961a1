package export

import (
	"strings"
	"time"
	"unicode"
)

// maxFilenameStem caps the sanitized use case name inside a filename.
const maxFilenameStem = 40

// SanitizeUseCaseName reduces a free-text use case name to a
// filesystem-safe stem: letters and digits survive, runs of anything
// else collapse to single underscores, and the result is capped at
// maxFilenameStem runes. An empty or fully-stripped name falls back to
// "UseCase".
func SanitizeUseCaseName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	stem := strings.Trim(b.String(), "_")
	if stem == "" {
		return "UseCase"
	}

	runes := []rune(stem)
	if len(runes) > maxFilenameStem {
		stem = strings.Trim(string(runes[:maxFilenameStem]), "_")
	}
	return stem
}

// ReportFilename returns the PDF artifact name:
// AIGovLens_Report_<Name>_<YYYYMMDD>.pdf.
func ReportFilename(useCaseName string, generatedAt time.Time) string {
	return "AIGovLens_Report_" + SanitizeUseCaseName(useCaseName) + "_" + generatedAt.Format("20060102") + ".pdf"
}

// ExportFilename returns the JSON artifact name:
// AIGovLens_Data_<Name>_<YYYYMMDD>.json.
func ExportFilename(useCaseName string, generatedAt time.Time) string {
	return "AIGovLens_Data_" + SanitizeUseCaseName(useCaseName) + "_" + generatedAt.Format("20060102") + ".json"
}
