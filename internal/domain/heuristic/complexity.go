package heuristic

import "regexp"

// BaseComplexity is the complexity of straight-line code.
const BaseComplexity = 1

var (
	controlFlowPattern  = regexp.MustCompile(`\b(if|for|while|case|catch)\b`)
	shortCircuitPattern = regexp.MustCompile(`&&|\|\||\?\?`)
	transformPattern    = regexp.MustCompile(`\.(map|filter|reduce|forEach|some|every|find|flatMap)\s*\(`)
)

// Complexity approximates cyclomatic complexity: one plus every control-flow
// keyword, short-circuit operator, ternary and collection transform.
// Chained boolean operators and optional-parameter markers over-count.
func Complexity(content string) int {
	c := BaseComplexity
	c += len(controlFlowPattern.FindAllStringIndex(content, -1))
	c += len(shortCircuitPattern.FindAllStringIndex(content, -1))
	c += len(transformPattern.FindAllStringIndex(content, -1))
	c += countTernaries(content)
	return c
}

// countTernaries counts '?' that are neither part of '??' nor optional chaining '?.'.
func countTernaries(content string) int {
	n := 0
	for i := 0; i < len(content); i++ {
		if content[i] != '?' {
			continue
		}
		if i+1 < len(content) && (content[i+1] == '?' || content[i+1] == '.') {
			i++
			continue
		}
		if i > 0 && content[i-1] == '?' {
			continue
		}
		n++
	}
	return n
}
