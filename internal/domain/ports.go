package domain

import "errors"

// ErrRootNotFound is returned when the corpus root does not exist.
var ErrRootNotFound = errors.New("root path does not exist")

// CorpusScanner walks a root directory and returns the readable source files.
type CorpusScanner interface {
	Scan(root string, opts ScanOptions) (*Corpus, error)
}

// ScanOptions controls which directories are pruned and which files are read.
type ScanOptions struct {
	ExcludeDirs []string
	Extensions  []string
}

// Corpus is the result of a scan: files in lexicographic path order.
type Corpus struct {
	Root     string       `json:"root"`
	Files    []SourceFile `json:"files"`
	Failures []Failure    `json:"failures,omitempty"`
}

// TextAnalyzer is the textual backend for complexity and effect extraction.
// Implementations approximate syntax; they are not parsers.
type TextAnalyzer interface {
	Complexity(content string) int
	EffectBlocks(content string) ([]EffectBlock, error)
}

// Detector matches one or more issue categories against a file's text.
// Findings are returned without File set; the caller stamps it.
type Detector interface {
	Name() string
	Detect(content string) ([]Finding, error)
}

// ConfigLoader loads project configuration from the corpus root.
type ConfigLoader interface {
	Load(root string) (ProjectConfig, error)
}

// ReportHistory persists run results for trend comparison.
type ReportHistory interface {
	Save(root string, report *Report) error
	Entries(root string) ([]HistoryEntry, error)
	Latest(root string) (*Report, error)
}

// GitInfo reads version-control metadata for the corpus root.
type GitInfo interface {
	IsGitRepo(root string) bool
	CommitHash(root string) (string, error)
}
