package domain

import (
	"fmt"
	"runtime"
	"strings"
)

// DefaultExcludeDirs are pruned from every scan.
var DefaultExcludeDirs = []string{
	"node_modules", ".git", "dist", "build", "coverage",
	".next", "vendor", ".sourcescan",
}

// DefaultExtensions is the source-text allow-list.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".vue"}

const (
	DefaultTopN             = 10
	DefaultComplexityMedium = 10
	DefaultComplexityHigh   = 20
)

// ProjectConfig holds project-level configuration loaded from .sourcescan.yaml.
type ProjectConfig struct {
	ExcludeDirs       []string         `yaml:"exclude_dirs"       json:"exclude_dirs,omitempty"`
	Extensions        []string         `yaml:"extensions"         json:"extensions,omitempty"`
	Workers           int              `yaml:"workers"            json:"workers,omitempty"`
	TopN              int              `yaml:"top_n"              json:"top_n,omitempty"`
	Complexity        ComplexityLimits `yaml:"complexity"         json:"complexity,omitempty"`
	DisabledDetectors []string         `yaml:"disabled_detectors" json:"disabled_detectors,omitempty"`
	DebtWeights       map[string]int   `yaml:"debt_weights"       json:"debt_weights,omitempty"`
	MinScore          int              `yaml:"min_score"          json:"min_score,omitempty"`
}

// ComplexityLimits are the thresholds above which a file is flagged.
type ComplexityLimits struct {
	Medium int `yaml:"medium" json:"medium,omitempty"`
	High   int `yaml:"high"   json:"high,omitempty"`
}

// DefaultConfig returns a zero-value config; accessors fill in defaults.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// ScanOptions merges configured exclusions with the built-in prune set.
func (c ProjectConfig) ScanOptions() ScanOptions {
	excludes := append([]string{}, DefaultExcludeDirs...)
	excludes = append(excludes, c.ExcludeDirs...)

	exts := DefaultExtensions
	if len(c.Extensions) > 0 {
		exts = make([]string, 0, len(c.Extensions))
		for _, e := range c.Extensions {
			exts = append(exts, NormalizeExtension(e))
		}
	}
	return ScanOptions{ExcludeDirs: excludes, Extensions: exts}
}

// NormalizeExtension lowercases an extension and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// EffectiveWorkers returns the worker pool size, defaulting to the core count.
func (c ProjectConfig) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// EffectiveTopN returns the ranking length.
func (c ProjectConfig) EffectiveTopN() int {
	if c.TopN > 0 {
		return c.TopN
	}
	return DefaultTopN
}

// EffectiveComplexity returns the thresholds with defaults applied.
func (c ProjectConfig) EffectiveComplexity() ComplexityLimits {
	l := c.Complexity
	if l.Medium <= 0 {
		l.Medium = DefaultComplexityMedium
	}
	if l.High <= 0 {
		l.High = DefaultComplexityHigh
	}
	return l
}

// IsDetectorDisabled reports whether the named detector is switched off.
func (c ProjectConfig) IsDetectorDisabled(name string) bool {
	for _, d := range c.DisabledDetectors {
		if d == name {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must be >= 0 (got %d)", c.TopN)
	}
	if c.Complexity.Medium < 0 || c.Complexity.High < 0 {
		return fmt.Errorf("complexity thresholds must be >= 0")
	}
	lim := c.EffectiveComplexity()
	if lim.High <= lim.Medium {
		return fmt.Errorf("complexity.high (%d) must be greater than complexity.medium (%d)", lim.High, lim.Medium)
	}
	for _, e := range c.Extensions {
		if NormalizeExtension(e) == "" {
			return fmt.Errorf("extensions must not contain empty values")
		}
	}
	for k, w := range c.DebtWeights {
		if w < 0 {
			return fmt.Errorf("debt_weights[%q] = %d (must be >= 0)", k, w)
		}
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("min_score = %d (must be between 0 and 100)", c.MinScore)
	}
	return nil
}
