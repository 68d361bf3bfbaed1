package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/openkraft/sourcescan/internal/domain"
)

const (
	// Dir is pruned from scans by default, see domain.DefaultExcludeDirs.
	Dir        = ".sourcescan/history"
	scoresFile = "scores.json"
	latestFile = "latest.json"
	filePerm   = 0o644
	dirPerm    = 0o755
	timeLayout = time.RFC3339
)

// FileHistory implements domain.ReportHistory using JSON files under the
// scanned root.
type FileHistory struct{}

var _ domain.ReportHistory = (*FileHistory)(nil)

func New() *FileHistory {
	return &FileHistory{}
}

// Save appends a trend entry and replaces the stored latest report.
func (h *FileHistory) Save(root string, report *domain.Report) error {
	entries, err := h.Entries(root)
	if err != nil {
		return err
	}
	entries = append(entries, EntryFor(report))

	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, scoresFile), entries); err != nil {
		return fmt.Errorf("writing score history: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, latestFile), report); err != nil {
		return fmt.Errorf("writing latest report: %w", err)
	}
	return nil
}

// Entries returns the trend in the order runs were saved.
func (h *FileHistory) Entries(root string) ([]domain.HistoryEntry, error) {
	data, err := os.ReadFile(filepath.Join(root, Dir, scoresFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading score history: %w", err)
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing score history: %w", err)
	}
	return entries, nil
}

// Latest returns the last saved report, or nil when there is none.
func (h *FileHistory) Latest(root string) (*domain.Report, error) {
	data, err := os.ReadFile(filepath.Join(root, Dir, latestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading latest report: %w", err)
	}

	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing latest report: %w", err)
	}
	return &r, nil
}

// EntryFor summarizes a report as one trend entry.
func EntryFor(r *domain.Report) domain.HistoryEntry {
	return domain.HistoryEntry{
		Timestamp:    r.Timestamp.UTC().Format(timeLayout),
		CommitHash:   r.CommitHash,
		QualityScore: r.Summary.QualityScore,
		Grade:        r.Summary.Grade,
		Findings:     r.Summary.TotalFindings,
		Critical:     r.Summary.BySeverity[domain.SeverityCritical],
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, filePerm)
}
