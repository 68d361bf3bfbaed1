package scoring

import (
	"fmt"

	"github.com/openkraft/sourcescan/internal/domain"
)

// ComplexityFinding flags a file whose complexity exceeds the limits:
// above Medium is medium severity, above High is high severity.
// It returns nil for files within limits.
func ComplexityFinding(complexity int, limits domain.ComplexityLimits) *domain.Finding {
	var sev domain.Severity
	switch {
	case complexity > limits.High:
		sev = domain.SeverityHigh
	case complexity > limits.Medium:
		sev = domain.SeverityMedium
	default:
		return nil
	}
	limit := limits.Medium
	if sev == domain.SeverityHigh {
		limit = limits.High
	}
	return &domain.Finding{
		Category:    domain.CategoryComplexity,
		Severity:    sev,
		Message:     fmt.Sprintf("file complexity %d exceeds %d", complexity, limit),
		Remediation: "Decompose the file into smaller functions or modules with a single responsibility.",
		Count:       1,
	}
}
