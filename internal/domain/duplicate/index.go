package duplicate

import (
	"fmt"
	"sync"

	"github.com/openkraft/sourcescan/internal/domain"
)

// DetectorName labels duplication findings.
const DetectorName = "duplication"

// Index maps window hashes to their first-seen location. It is safe for
// concurrent use; Observe is an atomic check-then-insert.
type Index struct {
	mu     sync.Mutex
	first  map[string]domain.Location
	blocks map[string]*domain.DuplicateBlock
	order  []string
}

func NewIndex() *Index {
	return &Index{
		first:  make(map[string]domain.Location),
		blocks: make(map[string]*domain.DuplicateBlock),
	}
}

// Observe records loc for w. The first sighting of a hash is kept as a
// candidate and Observe returns false. Later sightings promote the candidate
// to a duplicate block and return the first-seen location.
func (x *Index) Observe(w Window, loc domain.Location) (domain.Location, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	orig, seen := x.first[w.Hash]
	if !seen {
		x.first[w.Hash] = loc
		return domain.Location{}, false
	}

	b, promoted := x.blocks[w.Hash]
	if !promoted {
		b = &domain.DuplicateBlock{
			Hash:           w.Hash,
			NormalizedText: w.Text,
			Occurrences:    []domain.Location{orig},
		}
		x.blocks[w.Hash] = b
		x.order = append(x.order, w.Hash)
	}
	b.Occurrences = append(b.Occurrences, loc)
	return orig, true
}

// Blocks returns the promoted blocks in promotion order.
func (x *Index) Blocks() []domain.DuplicateBlock {
	x.mu.Lock()
	defer x.mu.Unlock()

	out := make([]domain.DuplicateBlock, 0, len(x.order))
	for _, h := range x.order {
		b := *x.blocks[h]
		b.Occurrences = append([]domain.Location(nil), b.Occurrences...)
		out = append(out, b)
	}
	return out
}

// Detect feeds one file's windows to the index in line order and returns the
// duplication findings for that file. Consecutive windows that collide with
// consecutive windows of the same original are merged into one finding.
func Detect(x *Index, file string, windows []Window) []domain.Finding {
	var findings []domain.Finding
	run := -1
	prevStart := -1
	var prevOrig domain.Location

	for _, w := range windows {
		loc := domain.Location{
			File:  file,
			Lines: domain.LineRange{Start: w.Start + 1, End: w.Start + WindowSize},
		}
		orig, dup := x.Observe(w, loc)
		if !dup {
			run = -1
			continue
		}

		extends := run >= 0 &&
			w.Start == prevStart+1 &&
			orig.File == prevOrig.File &&
			orig.Lines.Start == prevOrig.Lines.Start+1
		if extends {
			f := &findings[run]
			f.Lines.End = loc.Lines.End
			f.Occurrences[0].Lines.End = orig.Lines.End
			f.Occurrences[1].Lines.End = loc.Lines.End
		} else {
			findings = append(findings, newFinding(orig, loc))
			run = len(findings) - 1
		}
		prevStart, prevOrig = w.Start, orig
	}
	return findings
}

func newFinding(orig, loc domain.Location) domain.Finding {
	lines := loc.Lines
	return domain.Finding{
		Category:    domain.CategoryDuplication,
		Severity:    domain.SeverityMedium,
		File:        loc.File,
		Lines:       &lines,
		Message:     fmt.Sprintf("duplicated block, first seen at %s:%d", orig.File, orig.Lines.Start),
		Remediation: "Extract the shared lines into a reusable function or module.",
		Count:       1,
		Detector:    DetectorName,
		Occurrences: []domain.Location{orig, loc},
	}
}
