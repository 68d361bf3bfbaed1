package report

import (
	"fmt"

	"github.com/openkraft/sourcescan/internal/domain"
)

// DefaultRecommendations close every list, including a clean run.
var DefaultRecommendations = []string{
	"Run sourcescan in CI so regressions are caught before they merge.",
	"Re-run the analysis after refactoring to track the quality trend.",
}

type rule struct {
	applies func(t tally) bool
	text    func(t tally) string
}

type tally struct {
	findings map[domain.Category]int
	matches  map[domain.Category]int
}

func (t tally) loopRisks() int {
	return t.findings[domain.CategoryMissingDependencyList] + t.findings[domain.CategorySelfReferentialDependency]
}

// rules are evaluated in order; infinite-loop risk always ranks first.
var rules = []rule{
	{
		applies: func(t tally) bool { return t.loopRisks() >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Fix %d effect(s) at risk of infinite re-execution: add dependency lists and never depend on state the effect itself sets.", t.loopRisks())
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryUnsafeInjection] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Remove %d unsafe HTML injection or dynamic code execution site(s).", t.matches[domain.CategoryUnsafeInjection])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryComplexity] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Split the %d file(s) flagged for complexity into smaller units.", t.findings[domain.CategoryComplexity])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryDeprecatedAPI] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Migrate %d deprecated lifecycle or API call(s).", t.matches[domain.CategoryDeprecatedAPI])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryUnsafeAny] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Replace %d 'any' escape(s) with concrete types.", t.matches[domain.CategoryUnsafeAny])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryUnstableDependency] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Memoize or remove %d unstable dependenc(ies) in effects.", t.findings[domain.CategoryUnstableDependency])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryDuplication] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Extract %d duplicated block(s) into shared functions.", t.findings[domain.CategoryDuplication])
		},
	},
	{
		applies: func(t tally) bool { return t.matches[domain.CategoryMarkerComment] >= 10 },
		text: func(t tally) string {
			return fmt.Sprintf("Schedule a cleanup for %d TODO/FIXME/HACK markers.", t.matches[domain.CategoryMarkerComment])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryDebugStatement] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Remove %d leftover debug statement(s).", t.matches[domain.CategoryDebugStatement])
		},
	},
	{
		applies: func(t tally) bool { return t.findings[domain.CategoryDetectorFailure] >= 1 },
		text: func(t tally) string {
			return fmt.Sprintf("Review %d detector failure(s); those files were only partly analyzed.", t.findings[domain.CategoryDetectorFailure])
		},
	},
}

// Recommendations returns the fixed-order advice for a set of findings,
// followed by the default suggestions.
func Recommendations(findings []domain.Finding) []string {
	t := tally{findings: map[domain.Category]int{}, matches: map[domain.Category]int{}}
	for _, f := range findings {
		t.findings[f.Category]++
		t.matches[f.Category] += max(f.Count, 1)
	}

	var out []string
	for _, r := range rules {
		if r.applies(t) {
			out = append(out, r.text(t))
		}
	}
	return append(out, DefaultRecommendations...)
}
