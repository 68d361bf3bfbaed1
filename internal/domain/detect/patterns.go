package detect

import (
	"regexp"

	"github.com/openkraft/sourcescan/internal/domain"
)

// PatternDetector reports one finding per file carrying the match count of a
// single regular expression.
type PatternDetector struct {
	name        string
	category    domain.Category
	severity    domain.Severity
	pattern     *regexp.Regexp
	message     string
	remediation string
}

// NewPatternDetector builds a detector. The detector name is the category.
func NewPatternDetector(category domain.Category, severity domain.Severity, pattern *regexp.Regexp, message, remediation string) *PatternDetector {
	return &PatternDetector{
		name:        string(category),
		category:    category,
		severity:    severity,
		pattern:     pattern,
		message:     message,
		remediation: remediation,
	}
}

func (d *PatternDetector) Name() string              { return d.name }
func (d *PatternDetector) Category() domain.Category { return d.category }
func (d *PatternDetector) Severity() domain.Severity { return d.severity }

func (d *PatternDetector) Detect(content string) ([]domain.Finding, error) {
	matches := d.pattern.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return nil, nil
	}
	first := lineOf(content, matches[0][0])
	last := lineOf(content, matches[len(matches)-1][0])
	return []domain.Finding{{
		Category:    d.category,
		Severity:    d.severity,
		Lines:       &domain.LineRange{Start: first, End: last},
		Message:     d.message,
		Remediation: d.remediation,
		Count:       len(matches),
	}}, nil
}

var (
	markerPattern     = regexp.MustCompile(`\b(?:TODO|FIXME|HACK|XXX)\b`)
	unsafeAnyPattern  = regexp.MustCompile(`:\s*any\b|\bas\s+any\b|<any>`)
	debugPattern      = regexp.MustCompile(`\bconsole\.(?:log|debug|trace|dir|table)\s*\(|\bdebugger\b`)
	deprecatedPattern = regexp.MustCompile(`\b(?:componentWillMount|componentWillReceiveProps|componentWillUpdate|UNSAFE_componentWill\w+|findDOMNode|ReactDOM\.render|ReactDOM\.hydrate)\b`)
	injectionPattern  = regexp.MustCompile(`\bdangerouslySetInnerHTML\b|\beval\s*\(|\bnew\s+Function\s*\(|\.innerHTML\s*=[^=]|\bdocument\.write\s*\(`)
)

// DefaultPatterns returns the built-in pattern detectors.
func DefaultPatterns() []domain.Detector {
	return []domain.Detector{
		NewPatternDetector(domain.CategoryMarkerComment, domain.SeverityMedium, markerPattern,
			"TODO/FIXME/HACK markers left in code",
			"Resolve the marker or move it into the issue tracker."),
		NewPatternDetector(domain.CategoryUnsafeAny, domain.SeverityHigh, unsafeAnyPattern,
			"unsafe 'any' type escapes",
			"Replace 'any' with a concrete type or 'unknown' plus a type guard."),
		NewPatternDetector(domain.CategoryDebugStatement, domain.SeverityLow, debugPattern,
			"leftover debug statements",
			"Remove console output and debugger statements or route them through a logger."),
		NewPatternDetector(domain.CategoryDeprecatedAPI, domain.SeverityHigh, deprecatedPattern,
			"deprecated lifecycle or API calls",
			"Migrate to the supported lifecycle methods, hooks or root API."),
		NewPatternDetector(domain.CategoryUnsafeInjection, domain.SeverityCritical, injectionPattern,
			"unsafe HTML injection or dynamic code execution",
			"Sanitize markup before injecting it and avoid eval/new Function entirely."),
	}
}

func lineOf(content string, offset int) int {
	n := 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			n++
		}
	}
	return n
}
