package history_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/history"
	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(score int, ts time.Time) *domain.Report {
	return &domain.Report{
		Timestamp:  ts,
		Root:       "/src",
		CommitHash: "abc1234",
		Summary: domain.Summary{
			QualityScore:  score,
			Grade:         domain.GradeFor(score),
			TotalFindings: 3,
			BySeverity:    map[domain.Severity]int{domain.SeverityCritical: 1},
		},
		Findings: []domain.Finding{{
			Category: domain.CategoryUnsafeInjection,
			Severity: domain.SeverityCritical,
			File:     "src/app.js",
			Lines:    &domain.LineRange{Start: 4, End: 4},
			Message:  "unsafe HTML injection or dynamic code execution",
			Count:    1,
		}},
	}
}

func TestHistory_EmptyRoot(t *testing.T) {
	h := history.New()
	dir := t.TempDir()

	entries, err := h.Entries(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	latest, err := h.Latest(dir)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestHistory_SaveAppendsEntries(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	t0 := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

	require.NoError(t, h.Save(dir, sampleReport(47, t0)))
	require.NoError(t, h.Save(dir, sampleReport(62, t0.Add(time.Hour))))
	require.NoError(t, h.Save(dir, sampleReport(85, t0.Add(2*time.Hour))))

	entries, err := h.Entries(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2026-02-25T10:00:00Z", entries[0].Timestamp)
	assert.Equal(t, 47, entries[0].QualityScore)
	assert.Equal(t, "D", entries[0].Grade)
	assert.Equal(t, 85, entries[2].QualityScore)
	assert.Equal(t, 1, entries[2].Critical)
	assert.Equal(t, "abc1234", entries[2].CommitHash)
}

func TestHistory_LatestRoundTripsReport(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	want := sampleReport(80, time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC))

	require.NoError(t, h.Save(dir, want))
	got, err := h.Latest(dir)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Summary.QualityScore, got.Summary.QualityScore)
	assert.Equal(t, want.Findings[0].Fingerprint(), got.Findings[0].Fingerprint())
	assert.True(t, want.Timestamp.Equal(got.Timestamp))
}

func TestHistory_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, history.Dir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, history.Dir, "scores.json"), []byte("{nope"), 0o644))

	_, err := history.New().Entries(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing score history")
}
