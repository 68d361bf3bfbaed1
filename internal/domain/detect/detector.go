// Package detect holds the pattern detector set and the effect-dependency
// detector. Detectors are registered values, never looked up by string at
// run time, so the set stays statically checkable.
package detect

import (
	"errors"
	"fmt"

	"github.com/openkraft/sourcescan/internal/domain"
)

// ErrDetectorPanic wraps a panic recovered from a detector.
var ErrDetectorPanic = errors.New("detector panicked")

// Registry is an ordered set of detectors.
type Registry struct {
	detectors []domain.Detector
}

func NewRegistry(detectors ...domain.Detector) *Registry {
	r := &Registry{}
	for _, d := range detectors {
		r.Register(d)
	}
	return r
}

// Default returns the built-in pattern detectors followed by the effect
// detector backed by analyzer.
func Default(analyzer domain.TextAnalyzer) *Registry {
	r := NewRegistry(DefaultPatterns()...)
	r.Register(NewEffectDetector(analyzer))
	return r
}

// Register appends d. A detector with the same name replaces the earlier one.
func (r *Registry) Register(d domain.Detector) {
	for i, existing := range r.detectors {
		if existing.Name() == d.Name() {
			r.detectors[i] = d
			return
		}
	}
	r.detectors = append(r.detectors, d)
}

// Without returns a copy of the registry minus the named detectors.
func (r *Registry) Without(names ...string) *Registry {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	out := &Registry{}
	for _, d := range r.detectors {
		if !skip[d.Name()] {
			out.detectors = append(out.detectors, d)
		}
	}
	return out
}

// Detectors returns the registered detectors in registration order.
func (r *Registry) Detectors() []domain.Detector {
	return append([]domain.Detector(nil), r.detectors...)
}

// Names lists the registered detector names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.detectors))
	for _, d := range r.detectors {
		names = append(names, d.Name())
	}
	return names
}

// SafeDetect runs d over content, converting a panic into an error so one
// detector cannot abort the scan.
func SafeDetect(d domain.Detector, content string) ([]domain.Finding, error) {
	return SafeRun(d.Name(), func() ([]domain.Finding, error) { return d.Detect(content) })
}

// SafeRun calls fn on behalf of the named detector. A panic becomes an
// ErrDetectorPanic error and every finding is stamped with name.
func SafeRun(name string, fn func() ([]domain.Finding, error)) (findings []domain.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("%w: %v", ErrDetectorPanic, r)
		}
	}()
	findings, err = fn()
	for i := range findings {
		findings[i].Detector = name
	}
	return findings, err
}

// FailureFinding is the warning finding emitted when a detector fails on a file.
func FailureFinding(detector, file string, err error) domain.Finding {
	return domain.Finding{
		Category:    domain.CategoryDetectorFailure,
		Severity:    domain.SeverityLow,
		File:        file,
		Message:     fmt.Sprintf("detector %s failed on file %s: %v", detector, file, err),
		Remediation: "Check the file for unusual syntax; other detectors still ran.",
		Count:       1,
		Detector:    detector,
	}
}
