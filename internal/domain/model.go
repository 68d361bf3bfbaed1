package domain

import (
	"strings"
	"time"
)

// SourceFile is a readable text file from the scanned corpus. Immutable once read.
type SourceFile struct {
	Path      string `json:"path"`
	Content   string `json:"-"`
	LineCount int    `json:"line_count"`
	Extension string `json:"extension"`
}

// Lines splits the content on newlines. A trailing newline does not produce
// an extra empty line.
func (f SourceFile) Lines() []string {
	return SplitLines(f.Content)
}

// SplitLines splits text into lines, tolerating CRLF endings.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Severity ranks how urgent a finding is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Weight is the debt weight of a single match at this severity.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 10
	case SeverityHigh:
		return 5
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Rank orders severities; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// ParseSeverity accepts a severity name, case-insensitively.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, true
	case SeverityMedium:
		return SeverityMedium, true
	case SeverityHigh:
		return SeverityHigh, true
	case SeverityCritical:
		return SeverityCritical, true
	}
	return "", false
}

// Category names the kind of issue a finding reports.
type Category string

const (
	CategoryMarkerComment             Category = "marker-comment"
	CategoryUnsafeAny                 Category = "unsafe-any"
	CategoryDebugStatement            Category = "debug-statement"
	CategoryDeprecatedAPI             Category = "deprecated-api"
	CategoryUnsafeInjection           Category = "unsafe-injection"
	CategoryComplexity                Category = "complexity"
	CategoryDuplication               Category = "duplication"
	CategoryMissingDependencyList     Category = "missing-dependency-list"
	CategorySelfReferentialDependency Category = "self-referential-dependency"
	CategoryUnstableDependency        Category = "unstable-dependency"
	CategoryDetectorFailure           Category = "detector-failure"
)

// IsInfiniteLoopRisk reports whether the category describes an effect that
// can re-trigger itself forever.
func (c Category) IsInfiniteLoopRisk() bool {
	return c == CategoryMissingDependencyList || c == CategorySelfReferentialDependency
}

// LineRange is an inclusive, 1-based span of lines.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Location points at a span of lines in one file.
type Location struct {
	File  string    `json:"file"`
	Lines LineRange `json:"lines"`
}

// Finding is a single issue reported by a detector.
type Finding struct {
	Category    Category   `json:"category"`
	Severity    Severity   `json:"severity"`
	File        string     `json:"file"`
	Lines       *LineRange `json:"lines,omitempty"`
	Message     string     `json:"message"`
	Remediation string     `json:"remediation,omitempty"`
	Count       int        `json:"count"`
	Detector    string     `json:"detector,omitempty"`
	// Occurrences lists every location of a duplicated block, first-seen first.
	Occurrences []Location `json:"occurrences,omitempty"`
}

// Fingerprint identifies a finding across runs independent of its line numbers.
func (f Finding) Fingerprint() string {
	return string(f.Category) + "|" + f.File + "|" + f.Message
}

// StartLine returns the first line of the finding, or 0 when it is file-wide.
func (f Finding) StartLine() int {
	if f.Lines == nil {
		return 0
	}
	return f.Lines.Start
}

// FileMetrics holds the per-file scores.
type FileMetrics struct {
	Path         string `json:"path"`
	Lines        int    `json:"lines"`
	Complexity   int    `json:"complexity"`
	DebtScore    int    `json:"debt_score"`
	FindingCount int    `json:"finding_count"`
}

// DuplicateBlock is a normalized window seen in more than one place.
type DuplicateBlock struct {
	Hash           string     `json:"hash"`
	NormalizedText string     `json:"normalized_text"`
	Occurrences    []Location `json:"occurrences"`
}

// EffectBlock is one extracted effect call. Dependencies is nil when the call
// has no trailing dependency list and empty (non-nil) for an explicit [].
type EffectBlock struct {
	File         string   `json:"file,omitempty"`
	StartLine    int      `json:"start_line"`
	EndLine      int      `json:"end_line"`
	Body         string   `json:"body"`
	Dependencies []string `json:"dependencies"`
}

// HasDependencyList reports whether a trailing list, possibly empty, was present.
func (b EffectBlock) HasDependencyList() bool { return b.Dependencies != nil }

// Failure records a file or detector that could not complete.
type Failure struct {
	File     string `json:"file"`
	Detector string `json:"detector,omitempty"`
	Error    string `json:"error"`
}

// CategoryCount is one row of the category frequency table.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// Summary holds the corpus-wide aggregates of a report.
type Summary struct {
	FilesScanned      int              `json:"files_scanned"`
	TotalLines        int              `json:"total_lines"`
	TotalFindings     int              `json:"total_findings"`
	BySeverity        map[Severity]int `json:"by_severity"`
	QualityScore      int              `json:"quality_score"`
	Grade             string           `json:"grade"`
	DebtScore         int              `json:"debt_score"`
	AverageComplexity float64          `json:"average_complexity"`
	MaxComplexity     int              `json:"max_complexity"`
	DuplicateBlocks   int              `json:"duplicate_blocks"`
	EffectBlocks      int              `json:"effect_blocks"`
	FailedFiles       int              `json:"failed_files"`
	FailedDetectors   int              `json:"failed_detectors"`
	HasCritical       bool             `json:"has_critical"`
}

// Report is the sole artifact handed to reporters. Built once per run.
type Report struct {
	Timestamp       time.Time        `json:"timestamp"`
	Root            string           `json:"root"`
	CommitHash      string           `json:"commit_hash,omitempty"`
	Summary         Summary          `json:"summary"`
	Files           []FileMetrics    `json:"files"`
	Findings        []Finding        `json:"findings"`
	Duplicates      []DuplicateBlock `json:"duplicates,omitempty"`
	TopComplexity   []FileMetrics    `json:"top_complexity"`
	TopDebt         []FileMetrics    `json:"top_debt"`
	Categories      []CategoryCount  `json:"categories"`
	Recommendations []string         `json:"recommendations"`
	Failures        []Failure        `json:"failures,omitempty"`
	Comparison      *Comparison      `json:"comparison,omitempty"`
}

// Comparison describes how a report moved relative to a previous run.
type Comparison struct {
	PreviousTimestamp time.Time `json:"previous_timestamp"`
	PreviousScore     int       `json:"previous_score"`
	ScoreDelta        int       `json:"score_delta"`
	NewFindings       []string  `json:"new_findings,omitempty"`
	ResolvedFindings  []string  `json:"resolved_findings,omitempty"`
}

// HistoryEntry is one line of the score trend.
type HistoryEntry struct {
	Timestamp    string `json:"timestamp"`
	CommitHash   string `json:"commit_hash,omitempty"`
	QualityScore int    `json:"quality_score"`
	Grade        string `json:"grade"`
	Findings     int    `json:"findings"`
	Critical     int    `json:"critical"`
}

// GradeFor maps a quality score to a letter grade.
func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}
