package heuristic_test

import (
	"testing"

	"github.com/openkraft/sourcescan/internal/domain/heuristic"
	"github.com/stretchr/testify/assert"
)

func TestComplexity_EmptyIsBase(t *testing.T) {
	assert.Equal(t, 1, heuristic.Complexity(""))
	assert.Equal(t, 1, heuristic.Complexity("const a = 1;\n"))
}

func TestComplexity_CountsControlFlow(t *testing.T) {
	src := `if (a) {
  for (const x of xs) {}
  while (b) {}
} else if (c) {
  switch (d) {
    case 1:
    case 2:
  }
}
try {} catch (e) {}
`
	// if, for, while, if, case, case, catch
	assert.Equal(t, 1+7, heuristic.Complexity(src))
}

func TestComplexity_CountsOperators(t *testing.T) {
	src := `const v = a && b || c;
const w = x ?? y;
const z = ok ? 1 : 2;
const n = obj?.field;
const m = list.map(f).filter(g);
`
	// &&, ||, ??, ternary, map, filter; optional chaining is ignored
	assert.Equal(t, 1+6, heuristic.Complexity(src))
}

func TestComplexity_IgnoresKeywordSubstrings(t *testing.T) {
	assert.Equal(t, 1, heuristic.Complexity("const iffy = format; const casework = 1;\n"))
}

func TestComplexity_NeverBelowBase(t *testing.T) {
	inputs := []string{"", "}}}}", "????", "\n\n\n", "((((", "?."}
	for _, in := range inputs {
		assert.GreaterOrEqual(t, heuristic.Complexity(in), 1, "input %q", in)
	}
}

func TestAnalyzer_ImplementsTextAnalyzer(t *testing.T) {
	a := heuristic.New()
	assert.Equal(t, 2, a.Complexity("if (x) {}"))
	blocks, err := a.EffectBlocks("useEffect(() => {}, []);")
	assert.NoError(t, err)
	assert.Len(t, blocks, 1)
}
