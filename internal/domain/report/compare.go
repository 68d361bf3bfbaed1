package report

import (
	"sort"
	"strconv"

	"github.com/openkraft/sourcescan/internal/domain"
)

// Compare describes how current moved relative to previous. Findings are
// matched by fingerprint, so a finding that only shifted lines is unchanged.
// Repeated fingerprints are matched by occurrence, so fixing one of two
// identical findings in a file still shows as resolved.
func Compare(previous, current *domain.Report) *domain.Comparison {
	prev := fingerprints(previous.Findings)
	cur := fingerprints(current.Findings)

	c := &domain.Comparison{
		PreviousTimestamp: previous.Timestamp,
		PreviousScore:     previous.Summary.QualityScore,
		ScoreDelta:        current.Summary.QualityScore - previous.Summary.QualityScore,
	}
	for fp := range cur {
		if !prev[fp] {
			c.NewFindings = append(c.NewFindings, fp)
		}
	}
	for fp := range prev {
		if !cur[fp] {
			c.ResolvedFindings = append(c.ResolvedFindings, fp)
		}
	}
	sort.Strings(c.NewFindings)
	sort.Strings(c.ResolvedFindings)
	return c
}

// fingerprints keys the first occurrence by its plain fingerprint and the
// nth repeat as fingerprint#n.
func fingerprints(findings []domain.Finding) map[string]bool {
	set := make(map[string]bool, len(findings))
	seen := make(map[string]int, len(findings))
	for _, f := range findings {
		fp := f.Fingerprint()
		seen[fp]++
		if n := seen[fp]; n > 1 {
			fp += "#" + strconv.Itoa(n)
		}
		set[fp] = true
	}
	return set
}
