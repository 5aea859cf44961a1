// Package export serializes completed evaluations into the portable
// JSON interchange format and derives the artifact filenames shared by
// the report and export outputs.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/parul-khanna/aigovlens/internal/domain"
	"github.com/parul-khanna/aigovlens/internal/ports"
)

var _ ports.ExportSerializer = (*JSONExporter)(nil)

// JSONExporter serializes an export bundle as indented JSON. The
// output is a faithful round-trip source: unmarshaling it yields a
// bundle equal to the input, with the timestamp in RFC 3339.
type JSONExporter struct{}

// NewJSONExporter creates the exporter.
func NewJSONExporter() *JSONExporter { return &JSONExporter{} }

// Export serializes the bundle. Serialization is pure and
// deterministic; the only failure mode is an unmarshalable value,
// which the domain types cannot produce.
func (e *JSONExporter) Export(bundle domain.ExportBundle) ([]byte, error) {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export serialization failed: %w", err)
	}
	return data, nil
}
