package export

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/openkraft/sourcescan/internal/domain"
)

const (
	toolName = "sourcescan"
	toolURI  = "https://github.com/openkraft/sourcescan"
)

// WriteSARIF writes the findings as a SARIF 2.1.0 log with one rule per
// category, for CI annotators.
func WriteSARIF(w io.Writer, r *domain.Report) error {
	doc, err := BuildSARIF(r)
	if err != nil {
		return err
	}
	return doc.PrettyWrite(w)
}

// BuildSARIF converts the report into a SARIF log.
func BuildSARIF(r *domain.Report) (*sarif.Report, error) {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("creating SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	for _, f := range r.Findings {
		level := sarifLevel(f.Severity)
		rule := run.AddRule(string(f.Category)).
			WithDescription(ruleDescription(f.Category)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: level})

		msg := f.Message
		if f.Remediation != "" {
			msg = msg + ". " + f.Remediation
		}
		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(msg)).
			WithLevel(level).
			WithLocations([]*sarif.Location{sarifLocation(f.File, f.Lines)})
		run.AddResult(result)
	}
	doc.AddRun(run)
	return doc, nil
}

func sarifLocation(file string, lines *domain.LineRange) *sarif.Location {
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithUri(file))
	if lines != nil && lines.Start > 0 {
		physical = physical.WithRegion(sarif.NewRegion().WithStartLine(lines.Start).WithEndLine(max(lines.End, lines.Start)))
	}
	return sarif.NewLocation().WithPhysicalLocation(physical)
}

func sarifLevel(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical, domain.SeverityHigh:
		return "error"
	case domain.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}

var descriptions = map[domain.Category]string{
	domain.CategoryMarkerComment:             "TODO, FIXME, HACK or XXX marker left in code",
	domain.CategoryUnsafeAny:                 "Dynamic-typing escape that bypasses the type checker",
	domain.CategoryDebugStatement:            "Leftover console or debugger statement",
	domain.CategoryDeprecatedAPI:             "Deprecated lifecycle method or API call",
	domain.CategoryUnsafeInjection:           "Raw HTML injection or dynamic code execution",
	domain.CategoryComplexity:                "File complexity above the configured limit",
	domain.CategoryDuplication:               "Block of lines duplicated elsewhere in the corpus",
	domain.CategoryMissingDependencyList:     "Effect mutates state without a dependency list",
	domain.CategorySelfReferentialDependency: "Effect depends on the state it sets",
	domain.CategoryUnstableDependency:        "Effect depends on a function that may change every render",
	domain.CategoryDetectorFailure:           "A detector could not analyze the file",
}

func ruleDescription(c domain.Category) string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return string(c)
}
