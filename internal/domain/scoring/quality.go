package scoring

import "github.com/openkraft/sourcescan/internal/domain"

// MaxQualityScore is the score of a corpus without findings.
const MaxQualityScore = 100

// penalty is the quality deduction per finding. Low findings are free.
func penalty(s domain.Severity) int {
	switch s {
	case domain.SeverityCritical:
		return 20
	case domain.SeverityHigh:
		return 10
	case domain.SeverityMedium:
		return 5
	default:
		return 0
	}
}

// QualityScore starts at 100 and deducts per finding, floored at 0.
func QualityScore(findings []domain.Finding) int {
	score := MaxQualityScore
	for _, f := range findings {
		score -= penalty(f.Severity)
		if score <= 0 {
			return 0
		}
	}
	return score
}

// CountBySeverity tallies findings per severity. Every severity is present.
func CountBySeverity(findings []domain.Finding) map[domain.Severity]int {
	counts := map[domain.Severity]int{
		domain.SeverityLow:      0,
		domain.SeverityMedium:   0,
		domain.SeverityHigh:     0,
		domain.SeverityCritical: 0,
	}
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}
