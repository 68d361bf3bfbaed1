package detect_test

import (
	"testing"

	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/openkraft/sourcescan/internal/domain/detect"
	"github.com/openkraft/sourcescan/internal/domain/heuristic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func effectFindings(t *testing.T, src string) []domain.Finding {
	t.Helper()
	d := detect.NewEffectDetector(heuristic.New())
	findings, err := d.Detect(src)
	require.NoError(t, err)
	return findings
}

func countCategory(findings []domain.Finding, c domain.Category) int {
	n := 0
	for _, f := range findings {
		if f.Category == c {
			n++
		}
	}
	return n
}

func TestEffect_MissingListWithSetterIsCritical(t *testing.T) {
	src := `export function Profile() {
  const [data, setData] = useState(null);
  useEffect(() => {
    setData(fetchProfile());
  });
}
`
	findings := effectFindings(t, src)
	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, domain.CategoryMissingDependencyList, f.Category)
	assert.Equal(t, domain.SeverityCritical, f.Severity)
	assert.Equal(t, "effect with state mutation missing dependency list", f.Message)
	require.NotNil(t, f.Lines)
	assert.Equal(t, 3, f.Lines.Start)
	assert.Equal(t, 5, f.Lines.End)
}

func TestEffect_EmptyListNeverTreatedAsMissing(t *testing.T) {
	src := `useEffect(() => {
  setData(fetchProfile());
}, []);
`
	findings := effectFindings(t, src)
	assert.Equal(t, 0, countCategory(findings, domain.CategoryMissingDependencyList))
	assert.Empty(t, findings)
}

func TestEffect_MissingListWithoutSetterIsFine(t *testing.T) {
	src := `useEffect(() => {
  document.title = "hi";
});
`
	assert.Empty(t, effectFindings(t, src))
}

func TestEffect_SelfReferentialDependency(t *testing.T) {
	src := `useEffect(() => {
  setCount(count + 1);
}, [count]);
`
	findings := effectFindings(t, src)
	require.Equal(t, 1, countCategory(findings, domain.CategorySelfReferentialDependency))
	assert.Equal(t, domain.SeverityCritical, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "setCount")
}

func TestEffect_SelfReferentialIsCaseInsensitive(t *testing.T) {
	src := `useEffect(() => {
  setUserId(next);
}, [userId]);
`
	findings := effectFindings(t, src)
	assert.Equal(t, 1, countCategory(findings, domain.CategorySelfReferentialDependency))
}

func TestEffect_SelfReferentialRequiresExactToken(t *testing.T) {
	src := `useEffect(() => {
  setUser(load(userId));
}, [userId]);
`
	findings := effectFindings(t, src)
	assert.Equal(t, 0, countCategory(findings, domain.CategorySelfReferentialDependency),
		"userId must not match state user by substring")
}

func TestEffect_UnstableFunctionDependency(t *testing.T) {
	src := `useEffect(() => {
  fetchData();
}, [fetchData, page, props.id]);
`
	findings := effectFindings(t, src)
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, domain.CategoryUnstableDependency, f.Category)
		assert.Equal(t, domain.SeverityMedium, f.Severity)
	}
	assert.Equal(t, "dependency fetchData looks like a function recreated on every render", findings[0].Message)
	assert.Contains(t, findings[0].Remediation, "useCallback")
	assert.Equal(t, "dependency page may be recreated on every render", findings[1].Message)
	assert.Contains(t, findings[1].Remediation, "useMemo")
}

func TestEffect_SingleWordDependencyIsUnstable(t *testing.T) {
	src := `useEffect(() => {
  document.title = label;
}, [options, handler]);
`
	findings := effectFindings(t, src)
	assert.Equal(t, 2, countCategory(findings, domain.CategoryUnstableDependency))
}

func TestEffect_ObjectLiteralInExpressionBody(t *testing.T) {
	findings := effectFindings(t, "useEffect(() => setUser({ name: 'a' }), [user]);\n")
	assert.Equal(t, 1, countCategory(findings, domain.CategorySelfReferentialDependency))
	assert.Equal(t, 0, countCategory(findings, domain.CategoryMissingDependencyList))
}

func TestEffect_ObjectLiteralWithoutListIsCritical(t *testing.T) {
	findings := effectFindings(t, "useEffect(() => setUser({ name: 'a' }));\n")
	require.Len(t, findings, 1)
	assert.Equal(t, domain.CategoryMissingDependencyList, findings[0].Category)
	assert.Equal(t, domain.SeverityCritical, findings[0].Severity)
}

func TestEffect_UnbalancedBlockFailsDetector(t *testing.T) {
	d := detect.NewEffectDetector(heuristic.New())
	_, err := d.Detect("useEffect(() => {\n  setX(1);\n")
	assert.ErrorIs(t, err, heuristic.ErrUnbalancedBlock)
}

func TestSetters_DistinctInOrder(t *testing.T) {
	assert.Equal(t, []string{"setA", "setB"}, detect.Setters("setA(1); setB(2); setA(3); settle(); set(4)"))
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "count", detect.StateName("setCount"))
	assert.Equal(t, "userid", detect.StateName("setUserId"))
}

func TestIsLowerCamelCase(t *testing.T) {
	assert.True(t, detect.IsLowerCamelCase("fetchData"))
	assert.True(t, detect.IsLowerCamelCase("handleClickEvent"))
	assert.True(t, detect.IsLowerCamelCase("count"))
	assert.True(t, detect.IsLowerCamelCase("user2"))
	assert.False(t, detect.IsLowerCamelCase("Count"))
	assert.False(t, detect.IsLowerCamelCase("props.onChange"))
	assert.False(t, detect.IsLowerCamelCase("items[0]"))
	assert.False(t, detect.IsLowerCamelCase(""))
}

func TestEffectDetector_AnalyzeCountsBalancedBlocks(t *testing.T) {
	d := detect.NewEffectDetector(heuristic.New())

	findings, n, err := d.Analyze("useEffect(() => {\n  setA(a);\n}, [a]);\nuseEffect(() => go());\n")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, countCategory(findings, domain.CategorySelfReferentialDependency))

	findings, n, err = d.Analyze("useEffect(() => {\n  ok();\n}, []);\nuseEffect(() => {\n  broken();\n")
	assert.ErrorIs(t, err, heuristic.ErrUnbalancedBlock)
	assert.Equal(t, 1, n)
	assert.Empty(t, findings)
}
