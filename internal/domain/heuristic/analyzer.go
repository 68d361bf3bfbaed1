// Package heuristic implements domain.TextAnalyzer with line and brace
// scanning. It does not tokenize: braces inside strings or comments are
// counted like any other brace.
package heuristic

import "github.com/openkraft/sourcescan/internal/domain"

// Analyzer is the textual TextAnalyzer backend.
type Analyzer struct{}

var _ domain.TextAnalyzer = (*Analyzer)(nil)

func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Complexity(content string) int {
	return Complexity(content)
}

func (a *Analyzer) EffectBlocks(content string) ([]domain.EffectBlock, error) {
	return ExtractEffects(content)
}
