package detect

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/openkraft/sourcescan/internal/domain"
)

// EffectDetectorName is the registered name of the effect-dependency detector.
const EffectDetectorName = "effect-dependencies"

// setterPrefix marks a state setter: the prefix followed by an uppercase letter.
const setterPrefix = "set"

var setterCall = regexp.MustCompile(`\b` + setterPrefix + `([A-Z][A-Za-z0-9_$]*)\s*\(`)

// EffectDetector flags effect blocks that can re-execute forever or that
// depend on unstable function references.
type EffectDetector struct {
	analyzer domain.TextAnalyzer
}

func NewEffectDetector(analyzer domain.TextAnalyzer) *EffectDetector {
	return &EffectDetector{analyzer: analyzer}
}

func (d *EffectDetector) Name() string { return EffectDetectorName }

// Detect fails the whole file when any block is unbalanced.
func (d *EffectDetector) Detect(content string) ([]domain.Finding, error) {
	findings, _, err := d.Analyze(content)
	return findings, err
}

// Analyze extracts the effect blocks once and also returns how many balanced
// blocks were found. The count is set even when err is not nil.
func (d *EffectDetector) Analyze(content string) ([]domain.Finding, int, error) {
	blocks, err := d.analyzer.EffectBlocks(content)
	if err != nil {
		return nil, len(blocks), err
	}
	var findings []domain.Finding
	for _, b := range blocks {
		findings = append(findings, CheckEffect(b)...)
	}
	return findings, len(blocks), nil
}

// CheckEffect applies the three defect patterns to one block.
func CheckEffect(b domain.EffectBlock) []domain.Finding {
	lines := &domain.LineRange{Start: b.StartLine, End: b.EndLine}
	setters := Setters(b.Body)

	var findings []domain.Finding

	if !b.HasDependencyList() {
		if len(setters) > 0 {
			findings = append(findings, domain.Finding{
				Category: domain.CategoryMissingDependencyList,
				Severity: domain.SeverityCritical,
				Lines:    lines,
				Message:  "effect with state mutation missing dependency list",
				Remediation: fmt.Sprintf("Add a dependency list to the effect calling %s, or [] to run it once.",
					strings.Join(setters, ", ")),
				Count: len(setters),
			})
		}
		return findings
	}

	for _, setter := range setters {
		state := StateName(setter)
		for _, dep := range b.Dependencies {
			if !strings.EqualFold(dep, state) {
				continue
			}
			findings = append(findings, domain.Finding{
				Category: domain.CategorySelfReferentialDependency,
				Severity: domain.SeverityCritical,
				Lines:    lines,
				Message:  fmt.Sprintf("effect calls %s and depends on %s: infinite re-execution risk", setter, dep),
				Remediation: fmt.Sprintf("Remove %s from the dependency list or use the functional form %s(prev => ...).",
					dep, setter),
				Count: 1,
			})
			break
		}
	}

	for _, dep := range b.Dependencies {
		if !IsLowerCamelCase(dep) {
			continue
		}
		findings = append(findings, unstableFinding(dep, lines))
	}

	return findings
}

// Setters returns the distinct setter names called in body, in call order.
func Setters(body string) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range setterCall.FindAllStringSubmatch(body, -1) {
		name := setterPrefix + m[1]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// StateName derives the state a setter mutates: setUserId -> userid.
func StateName(setter string) string {
	return strings.ToLower(strings.TrimPrefix(setter, setterPrefix))
}

// functionVerbs are leading words that mark a dependency as a function
// rather than a derived object or array.
var functionVerbs = map[string]bool{
	"fetch": true, "get": true, "load": true, "handle": true, "on": true,
	"update": true, "compute": true, "make": true, "create": true, "build": true,
	"render": true, "format": true, "validate": true, "refresh": true, "sync": true,
}

// unstableFinding words the warning after the dependency's leading word:
// fetchData reads as a callback, options as a value rebuilt each render.
func unstableFinding(dep string, lines *domain.LineRange) domain.Finding {
	f := domain.Finding{
		Category: domain.CategoryUnstableDependency,
		Severity: domain.SeverityMedium,
		Lines:    lines,
		Count:    1,
	}
	if looksLikeFunction(dep) {
		f.Message = fmt.Sprintf("dependency %s looks like a function recreated on every render", dep)
		f.Remediation = fmt.Sprintf("Memoize %s with useCallback, move it inside the effect, or remove it.", dep)
		return f
	}
	f.Message = fmt.Sprintf("dependency %s may be recreated on every render", dep)
	f.Remediation = fmt.Sprintf("Keep %s referentially stable (useState, useMemo or a primitive value).", dep)
	return f
}

func looksLikeFunction(dep string) bool {
	words := camelcase.Split(dep)
	return len(words) > 1 && functionVerbs[strings.ToLower(words[0])]
}

// IsLowerCamelCase reports whether token is a plain identifier that starts
// lowercase, like count or fetchData. Member accesses such as props.id and
// expressions never match.
func IsLowerCamelCase(token string) bool {
	if token == "" || !unicode.IsLower(rune(token[0])) {
		return false
	}
	for _, r := range token {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$') {
			return false
		}
	}
	return true
}
