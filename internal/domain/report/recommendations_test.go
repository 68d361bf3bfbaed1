package report_test

import (
	"testing"

	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/openkraft/sourcescan/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendations_NoFindingsGivesDefaultsOnly(t *testing.T) {
	assert.Equal(t, report.DefaultRecommendations, report.Recommendations(nil))
}

func TestRecommendations_LoopRiskAlwaysFirst(t *testing.T) {
	findings := []domain.Finding{
		{Category: domain.CategoryUnsafeInjection, Count: 3},
		{Category: domain.CategoryDebugStatement, Count: 1},
		{Category: domain.CategorySelfReferentialDependency, Count: 1},
	}
	got := report.Recommendations(findings)
	require.Len(t, got, 3+len(report.DefaultRecommendations))
	assert.Contains(t, got[0], "infinite re-execution")
	assert.Contains(t, got[1], "3 unsafe")
	assert.Contains(t, got[2], "debug")
}

func TestRecommendations_MarkerThreshold(t *testing.T) {
	few := []domain.Finding{{Category: domain.CategoryMarkerComment, Count: 9}}
	assert.Equal(t, report.DefaultRecommendations, report.Recommendations(few))

	many := []domain.Finding{
		{Category: domain.CategoryMarkerComment, Count: 6},
		{Category: domain.CategoryMarkerComment, Count: 4},
	}
	got := report.Recommendations(many)
	assert.Contains(t, got[0], "10 TODO/FIXME/HACK")
}
