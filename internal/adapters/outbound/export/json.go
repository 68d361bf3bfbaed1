// Package export writes a Report in machine- and human-readable formats.
// Every format is a projection of the Report alone; nothing is recomputed.
package export

import (
	"encoding/json"
	"io"

	"github.com/openkraft/sourcescan/internal/domain"
)

// WriteJSON writes the report as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
