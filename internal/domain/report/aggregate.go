// Package report merges per-file results into the final Report. It never
// reads files or runs detectors.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/openkraft/sourcescan/internal/domain/scoring"
)

// FileResult is everything the per-file step produced for one file.
type FileResult struct {
	Path         string
	Lines        int
	Complexity   int
	DebtScore    int
	EffectBlocks int
	Findings     []domain.Finding
	Failures     []domain.Failure
}

// Input is the complete set of partial results for one run.
type Input struct {
	Root              string
	CommitHash        string
	Timestamp         time.Time
	Files             []FileResult
	DuplicateFindings []domain.Finding
	Duplicates        []domain.DuplicateBlock
	ScanFailures      []domain.Failure
	TopN              int
	// Previous, when set, is compared against the new report.
	Previous *domain.Report
}

// Aggregate builds the report. Output order is independent of input order.
func Aggregate(in Input) *domain.Report {
	files := make([]FileResult, len(in.Files))
	copy(files, in.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	var findings []domain.Finding
	var failures []domain.Failure
	failedDetectors := 0
	for _, f := range files {
		findings = append(findings, f.Findings...)
		failures = append(failures, f.Failures...)
		failedDetectors += len(f.Failures)
	}
	findings = append(findings, in.DuplicateFindings...)
	SortFindings(findings)

	perFile := make(map[string]int, len(files))
	for _, f := range findings {
		perFile[f.File]++
	}

	metrics := make([]domain.FileMetrics, 0, len(files))
	totalLines, totalComplexity, maxComplexity, effects := 0, 0, 0, 0
	for _, f := range files {
		metrics = append(metrics, domain.FileMetrics{
			Path:         f.Path,
			Lines:        f.Lines,
			Complexity:   f.Complexity,
			DebtScore:    f.DebtScore,
			FindingCount: perFile[f.Path],
		})
		totalLines += f.Lines
		totalComplexity += f.Complexity
		maxComplexity = max(maxComplexity, f.Complexity)
		effects += f.EffectBlocks
	}

	failures = append(failures, in.ScanFailures...)
	sort.SliceStable(failures, func(i, j int) bool {
		if failures[i].File != failures[j].File {
			return failures[i].File < failures[j].File
		}
		return failures[i].Detector < failures[j].Detector
	})

	categories := CategoryFrequency(findings)
	quality := scoring.QualityScore(findings)
	bySeverity := scoring.CountBySeverity(findings)

	avg := 0.0
	if len(metrics) > 0 {
		avg = math.Round(float64(totalComplexity)/float64(len(metrics))*100) / 100
	}

	topN := in.TopN
	if topN <= 0 {
		topN = domain.DefaultTopN
	}

	if findings == nil {
		findings = []domain.Finding{}
	}

	r := &domain.Report{
		Timestamp:  in.Timestamp,
		Root:       in.Root,
		CommitHash: in.CommitHash,
		Summary: domain.Summary{
			FilesScanned:      len(metrics),
			TotalLines:        totalLines,
			TotalFindings:     len(findings),
			BySeverity:        bySeverity,
			QualityScore:      quality,
			Grade:             domain.GradeFor(quality),
			DebtScore:         scoring.CorpusScore(metrics),
			AverageComplexity: avg,
			MaxComplexity:     maxComplexity,
			DuplicateBlocks:   len(in.Duplicates),
			EffectBlocks:      effects,
			FailedFiles:       len(in.ScanFailures),
			FailedDetectors:   failedDetectors,
			HasCritical:       bySeverity[domain.SeverityCritical] > 0,
		},
		Files:           metrics,
		Findings:        findings,
		Duplicates:      in.Duplicates,
		TopComplexity:   TopBy(metrics, topN, func(m domain.FileMetrics) int { return m.Complexity }),
		TopDebt:         TopBy(metrics, topN, func(m domain.FileMetrics) int { return m.DebtScore }),
		Categories:      categories,
		Recommendations: Recommendations(findings),
		Failures:        failures,
	}
	if in.Previous != nil {
		r.Comparison = Compare(in.Previous, r)
	}
	return r
}

// SortFindings orders by severity (most severe first), then file, line,
// category and message.
func SortFindings(findings []domain.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.StartLine() != b.StartLine() {
			return a.StartLine() < b.StartLine()
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Message < b.Message
	})
}

// TopBy returns up to n files with the highest positive key, ties by path.
func TopBy(files []domain.FileMetrics, n int, key func(domain.FileMetrics) int) []domain.FileMetrics {
	ranked := make([]domain.FileMetrics, 0, len(files))
	for _, f := range files {
		if key(f) > 0 {
			ranked = append(ranked, f)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ki, kj := key(ranked[i]), key(ranked[j])
		if ki != kj {
			return ki > kj
		}
		return ranked[i].Path < ranked[j].Path
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CategoryFrequency counts findings per category, most frequent first.
// Ties keep the order in which the category first appears in findings.
func CategoryFrequency(findings []domain.Finding) []domain.CategoryCount {
	index := map[domain.Category]int{}
	counts := []domain.CategoryCount{}
	for _, f := range findings {
		i, ok := index[f.Category]
		if !ok {
			i = len(counts)
			index[f.Category] = i
			counts = append(counts, domain.CategoryCount{Category: f.Category})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}
