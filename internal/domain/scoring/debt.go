package scoring

import (
	"github.com/openkraft/sourcescan/internal/domain"
)

// DebtScorer weighs pattern matches into a debt score.
// Categories outside the table do not contribute.
type DebtScorer struct {
	weights map[domain.Category]int
}

// DefaultDebtWeights maps each pattern category to its severity weight.
func DefaultDebtWeights() map[domain.Category]int {
	return map[domain.Category]int{
		domain.CategoryMarkerComment:   domain.SeverityMedium.Weight(),
		domain.CategoryUnsafeAny:       domain.SeverityHigh.Weight(),
		domain.CategoryDebugStatement:  domain.SeverityLow.Weight(),
		domain.CategoryDeprecatedAPI:   domain.SeverityHigh.Weight(),
		domain.CategoryUnsafeInjection: domain.SeverityCritical.Weight(),
	}
}

// NewDebtScorer builds a scorer from the default table with overrides applied.
// Override keys are category names.
func NewDebtScorer(overrides map[string]int) *DebtScorer {
	w := DefaultDebtWeights()
	for k, v := range overrides {
		w[domain.Category(k)] = v
	}
	return &DebtScorer{weights: w}
}

// Weight returns the weight for a category, and whether it is tracked.
func (s *DebtScorer) Weight(c domain.Category) (int, bool) {
	w, ok := s.weights[c]
	return w, ok
}

// FileScore sums match count times weight over one file's findings.
func (s *DebtScorer) FileScore(findings []domain.Finding) int {
	total := 0
	for _, f := range findings {
		if w, ok := s.weights[f.Category]; ok {
			total += f.Count * w
		}
	}
	return total
}

// CorpusScore is the sum of all per-file scores.
func CorpusScore(files []domain.FileMetrics) int {
	total := 0
	for _, f := range files {
		total += f.DebtScore
	}
	return total
}
