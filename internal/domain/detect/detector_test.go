package detect_test

import (
	"errors"
	"testing"

	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/openkraft/sourcescan/internal/domain/detect"
	"github.com/openkraft/sourcescan/internal/domain/heuristic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panicDetector struct{}

func (panicDetector) Name() string { return "boom" }
func (panicDetector) Detect(string) ([]domain.Finding, error) {
	panic("unexpected input")
}

type errDetector struct{}

func (errDetector) Name() string { return "fails" }
func (errDetector) Detect(string) ([]domain.Finding, error) {
	return nil, errors.New("bad input")
}

func findPattern(t *testing.T, c domain.Category) domain.Detector {
	t.Helper()
	for _, d := range detect.DefaultPatterns() {
		if d.Name() == string(c) {
			return d
		}
	}
	t.Fatalf("no detector for %s", c)
	return nil
}

func TestPatterns_OneFindingPerCategoryWithCount(t *testing.T) {
	src := `// TODO: split this
function a() {}
// FIXME later
// HACK around bug
`
	findings, err := findPattern(t, domain.CategoryMarkerComment).Detect(src)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, 3, findings[0].Count)
	assert.Equal(t, domain.SeverityMedium, findings[0].Severity)
	assert.Equal(t, &domain.LineRange{Start: 1, End: 4}, findings[0].Lines)
}

func TestPatterns_Severities(t *testing.T) {
	cases := []struct {
		category domain.Category
		src      string
		severity domain.Severity
	}{
		{domain.CategoryUnsafeAny, "let x: any = 1; const y = z as any;", domain.SeverityHigh},
		{domain.CategoryDebugStatement, "console.log('x'); debugger;", domain.SeverityLow},
		{domain.CategoryDeprecatedAPI, "componentWillMount() {} ReactDOM.render(a, b)", domain.SeverityHigh},
		{domain.CategoryUnsafeInjection, "<div dangerouslySetInnerHTML={html} />; eval(code)", domain.SeverityCritical},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			findings, err := findPattern(t, tc.category).Detect(tc.src)
			require.NoError(t, err)
			require.Len(t, findings, 1)
			assert.Equal(t, tc.severity, findings[0].Severity)
			assert.Equal(t, 2, findings[0].Count)
		})
	}
}

func TestPatterns_NoMatchYieldsNothing(t *testing.T) {
	for _, d := range detect.DefaultPatterns() {
		findings, err := d.Detect("const answer = 42;\n")
		require.NoError(t, err)
		assert.Empty(t, findings, d.Name())
	}
}

func TestPatterns_MalformedInputDoesNotFail(t *testing.T) {
	inputs := []string{"", "\x00\xff\xfe", "{{{{((((", "`unterminated"}
	for _, d := range detect.DefaultPatterns() {
		for _, in := range inputs {
			_, err := detect.SafeDetect(d, in)
			assert.NoError(t, err)
		}
	}
}

func TestPatterns_InnerHTMLComparisonIsNotInjection(t *testing.T) {
	findings, err := findPattern(t, domain.CategoryUnsafeInjection).Detect("if (el.innerHTML === '') {}")
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestRegistry_DefaultOrderAndNames(t *testing.T) {
	r := detect.Default(heuristic.New())
	assert.Equal(t, []string{
		"marker-comment", "unsafe-any", "debug-statement",
		"deprecated-api", "unsafe-injection", detect.EffectDetectorName,
	}, r.Names())
}

func TestRegistry_WithoutAndRegister(t *testing.T) {
	r := detect.Default(heuristic.New()).Without("debug-statement", detect.EffectDetectorName)
	assert.NotContains(t, r.Names(), "debug-statement")
	assert.NotContains(t, r.Names(), detect.EffectDetectorName)

	r.Register(errDetector{})
	r.Register(errDetector{})
	assert.Len(t, r.Detectors(), 5)
}

func TestSafeDetect_RecoversPanic(t *testing.T) {
	findings, err := detect.SafeDetect(panicDetector{}, "anything")
	assert.Nil(t, findings)
	assert.ErrorIs(t, err, detect.ErrDetectorPanic)
}

func TestSafeDetect_StampsDetectorName(t *testing.T) {
	findings, err := detect.SafeDetect(findPattern(t, domain.CategoryDebugStatement), "console.log(1)")
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "debug-statement", findings[0].Detector)
}

func TestFailureFinding(t *testing.T) {
	f := detect.FailureFinding("fails", "src/a.js", errors.New("bad input"))
	assert.Equal(t, domain.CategoryDetectorFailure, f.Category)
	assert.Equal(t, domain.SeverityLow, f.Severity)
	assert.Equal(t, "src/a.js", f.File)
	assert.Contains(t, f.Message, "detector fails failed on file src/a.js")
}

func TestSafeRun_StampsNameAndRecovers(t *testing.T) {
	findings, err := detect.SafeRun("custom", func() ([]domain.Finding, error) {
		return []domain.Finding{{Category: domain.CategoryDebugStatement}}, nil
	})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "custom", findings[0].Detector)

	_, err = detect.SafeRun("custom", func() ([]domain.Finding, error) { panic("bad") })
	assert.ErrorIs(t, err, detect.ErrDetectorPanic)
}
