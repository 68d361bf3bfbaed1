package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/openkraft/sourcescan/internal/domain"
)

var markdownSeverities = []domain.Severity{
	domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow,
}

// WriteMarkdown renders the report as a Markdown document.
func WriteMarkdown(w io.Writer, r *domain.Report) error {
	var b strings.Builder
	s := r.Summary

	b.WriteString("# Source Analysis Report\n\n")
	fmt.Fprintf(&b, "- **Generated:** %s\n", r.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"))
	if r.Root != "" {
		fmt.Fprintf(&b, "- **Root:** `%s`\n", r.Root)
	}
	if r.CommitHash != "" {
		fmt.Fprintf(&b, "- **Commit:** `%s`\n", r.CommitHash)
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Quality score | **%d / 100** (%s) |\n", s.QualityScore, s.Grade)
	fmt.Fprintf(&b, "| Files scanned | %d |\n", s.FilesScanned)
	fmt.Fprintf(&b, "| Total lines | %d |\n", s.TotalLines)
	fmt.Fprintf(&b, "| Findings | %d |\n", s.TotalFindings)
	for _, sev := range markdownSeverities {
		fmt.Fprintf(&b, "| &nbsp;&nbsp;%s | %d |\n", sev, s.BySeverity[sev])
	}
	fmt.Fprintf(&b, "| Debt score | %d |\n", s.DebtScore)
	fmt.Fprintf(&b, "| Average complexity | %.2f |\n", s.AverageComplexity)
	fmt.Fprintf(&b, "| Max complexity | %d |\n", s.MaxComplexity)
	fmt.Fprintf(&b, "| Duplicate blocks | %d |\n", s.DuplicateBlocks)
	fmt.Fprintf(&b, "| Effect blocks | %d |\n", s.EffectBlocks)
	if s.FailedFiles > 0 || s.FailedDetectors > 0 {
		fmt.Fprintf(&b, "| Failed files | %d |\n", s.FailedFiles)
		fmt.Fprintf(&b, "| Failed detectors | %d |\n", s.FailedDetectors)
	}

	if c := r.Comparison; c != nil {
		b.WriteString("\n## Compared to previous run\n\n")
		fmt.Fprintf(&b, "Score %d → %d (%+d). %d new, %d resolved.\n",
			c.PreviousScore, s.QualityScore, c.ScoreDelta, len(c.NewFindings), len(c.ResolvedFindings))
	}

	writeRanking(&b, "Top files by complexity", "Complexity", r.TopComplexity, func(m domain.FileMetrics) int { return m.Complexity })
	writeRanking(&b, "Top files by debt", "Debt", r.TopDebt, func(m domain.FileMetrics) int { return m.DebtScore })

	if len(r.Categories) > 0 {
		b.WriteString("\n## Categories\n\n| Category | Findings |\n|---|---|\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&b, "| %s | %d |\n", c.Category, c.Count)
		}
	}

	b.WriteString("\n## Findings\n\n")
	if len(r.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		b.WriteString("| Severity | Category | Location | Message | Count |\n|---|---|---|---|---|\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "| %s | %s | `%s` | %s | %d |\n",
				f.Severity, f.Category, location(f), escapeCell(f.Message), f.Count)
		}
	}

	b.WriteString("\n## Recommendations\n\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRanking(b *strings.Builder, title, column string, files []domain.FileMetrics, key func(domain.FileMetrics) int) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n| File | %s |\n|---|---|\n", title, column)
	for _, f := range files {
		fmt.Fprintf(b, "| `%s` | %d |\n", f.Path, key(f))
	}
}

func location(f domain.Finding) string {
	if f.Lines == nil {
		return f.File
	}
	if f.Lines.End > f.Lines.Start {
		return fmt.Sprintf("%s:%d-%d", f.File, f.Lines.Start, f.Lines.End)
	}
	return fmt.Sprintf("%s:%d", f.File, f.Lines.Start)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
