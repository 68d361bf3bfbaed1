package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/sourcescan/internal/domain"
)

// ── warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
	lime    = lipgloss.Color("#A3E635")
	orange  = lipgloss.Color("#FB923C")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[string]lipgloss.Color{
		"A+": success,
		"A":  success,
		"B":  lime,
		"C":  warning,
		"D":  orange,
		"F":  danger,
	}

	severityStyles = map[domain.Severity]lipgloss.Style{
		domain.SeverityCritical: lipgloss.NewStyle().Foreground(danger).Bold(true),
		domain.SeverityHigh:     lipgloss.NewStyle().Foreground(orange).Bold(true),
		domain.SeverityMedium:   lipgloss.NewStyle().Foreground(warning),
		domain.SeverityLow:      lipgloss.NewStyle().Foreground(info),
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// MaxFindings caps the finding list in console output; exports are complete.
const MaxFindings = 40

var severityOrder = []domain.Severity{
	domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow,
}

// RenderReport formats a report for terminal output.
func RenderReport(r *domain.Report) string {
	var b strings.Builder
	s := r.Summary

	// ── Header ──
	title := headerStyle.Render("sourcescan")
	subtitle := dimStyle.Render("Static Source Analysis")
	color := gradeColor(s.Grade)
	scoreStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d / 100", s.QualityScore))
	gradeStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(s.Grade)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled))
	b.WriteString("\n\n")

	// ── Summary ──
	writeStat(&b, "Files", fmt.Sprintf("%d (%d lines)", s.FilesScanned, s.TotalLines))
	writeStat(&b, "Findings", fmt.Sprintf("%d  %s", s.TotalFindings, severityBreakdown(s.BySeverity)))
	writeStat(&b, "Debt score", fmt.Sprintf("%d", s.DebtScore))
	writeStat(&b, "Complexity", fmt.Sprintf("avg %.2f  max %d", s.AverageComplexity, s.MaxComplexity))
	writeStat(&b, "Duplicates", fmt.Sprintf("%d blocks", s.DuplicateBlocks))
	writeStat(&b, "Effects", fmt.Sprintf("%d blocks", s.EffectBlocks))
	if s.FailedFiles > 0 || s.FailedDetectors > 0 {
		writeStat(&b, "Failures", failStyle.Render(fmt.Sprintf("%d files, %d detectors", s.FailedFiles, s.FailedDetectors)))
	}
	if r.CommitHash != "" {
		writeStat(&b, "Commit", gitinfo.ShortHash(r.CommitHash))
	}
	if c := r.Comparison; c != nil {
		writeStat(&b, "Previous", fmt.Sprintf("%d/100  %s  +%d new  -%d resolved",
			c.PreviousScore, delta(c.ScoreDelta), len(c.NewFindings), len(c.ResolvedFindings)))
	}

	b.WriteString("\n  " + separatorLine + "\n\n")

	// ── Rankings ──
	renderRanking(&b, "Top complexity", r.TopComplexity, func(m domain.FileMetrics) int { return m.Complexity })
	renderRanking(&b, "Top debt", r.TopDebt, func(m domain.FileMetrics) int { return m.DebtScore })

	if len(r.Categories) > 0 {
		b.WriteString("  " + titleStyle.Render("Categories") + "\n")
		for _, c := range r.Categories {
			fmt.Fprintf(&b, "    %s %s\n", labelStyle.Render(padRight(string(c.Category), 30)), dimStyle.Render(fmt.Sprintf("%d", c.Count)))
		}
		b.WriteString("\n")
	}

	// ── Findings ──
	if len(r.Findings) > 0 {
		b.WriteString("  " + titleStyle.Render("Findings") + "\n\n")
		for i, f := range r.Findings {
			if i == MaxFindings {
				fmt.Fprintf(&b, "    %s\n", dimStyle.Render(fmt.Sprintf("… and %d more (use --json for the full list)", len(r.Findings)-MaxFindings)))
				break
			}
			renderFinding(&b, f)
		}
	} else {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n")
	}

	// ── Recommendations ──
	b.WriteString("\n  " + titleStyle.Render("Recommendations") + "\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(fmt.Sprintf("%d.", i+1)), rec)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderFindings formats a flat finding list, used for single-file checks.
func RenderFindings(findings []domain.Finding) string {
	if len(findings) == 0 {
		return "  " + passStyle.Render("No findings.") + "\n"
	}
	var b strings.Builder
	for _, f := range findings {
		renderFinding(&b, f)
	}
	return b.String()
}

func writeStat(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", dimStyle.Render(padRight(label, 12)), value)
}

func severityBreakdown(counts map[domain.Severity]int) string {
	var parts []string
	for _, sev := range severityOrder {
		if n := counts[sev]; n > 0 {
			parts = append(parts, severityStyles[sev].Render(fmt.Sprintf("%d %s", n, sev)))
		}
	}
	return strings.Join(parts, "  ")
}

func renderRanking(b *strings.Builder, title string, files []domain.FileMetrics, key func(domain.FileMetrics) int) {
	if len(files) == 0 {
		return
	}
	b.WriteString("  " + titleStyle.Render(title) + "\n")
	top := key(files[0])
	for _, f := range files {
		v := key(f)
		fmt.Fprintf(b, "    %s %s %s\n",
			coloredBar(v, top, 16),
			dimStyle.Render(fmt.Sprintf("%4d", v)),
			fileStyle.Render(f.Path))
	}
	b.WriteString("\n")
}

func renderFinding(b *strings.Builder, f domain.Finding) {
	loc := f.File
	if f.Lines != nil {
		loc = fmt.Sprintf("%s:%d", f.File, f.Lines.Start)
	}
	msg := f.Message
	if f.Count > 1 {
		msg = fmt.Sprintf("%s (×%d)", msg, f.Count)
	}
	fmt.Fprintf(b, "    %s %s\n", severityTag(f.Severity), fileStyle.Render(loc))
	fmt.Fprintf(b, "             %s\n", dimStyle.Render(msg))
}

func severityTag(s domain.Severity) string {
	style, ok := severityStyles[s]
	if !ok {
		style = dimStyle
	}
	return style.Render(padRight(string(s), 8))
}

// coloredBar draws value relative to top; the worst file fills the bar.
func coloredBar(value, top, width int) string {
	filled := 0
	if top > 0 {
		filled = max(0, min(value*width/top, width))
	}
	filledStr := lipgloss.NewStyle().Foreground(accent).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", width-filled))
	return filledStr + emptyStr
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func delta(d int) string {
	switch {
	case d > 0:
		return passStyle.Render(fmt.Sprintf("↑%d", d))
	case d < 0:
		return failStyle.Render(fmt.Sprintf("↓%d", -d))
	default:
		return dimStyle.Render("=")
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats the score trend for terminal output.
func RenderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No score history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Score History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := gitinfo.ShortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		day := e.Timestamp
		if len(day) > 10 {
			day = day[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.QualityScore)).
			Render(fmt.Sprintf("%d/100", e.QualityScore))

		line := fmt.Sprintf("  %s  %s  %s  %s  %s",
			dimStyle.Render(day),
			faintStyle.Render(hash),
			scoreStyled,
			padRight(e.Grade, 2),
			dimStyle.Render(fmt.Sprintf("%d findings", e.Findings)),
		)
		if i > 0 {
			if d := e.QualityScore - entries[i-1].QualityScore; d != 0 {
				line += "  " + delta(d)
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func gradeColor(grade string) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}
