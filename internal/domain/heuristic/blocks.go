package heuristic

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/openkraft/sourcescan/internal/domain"
)

// ErrUnbalancedBlock is returned when an effect block never closes.
var ErrUnbalancedBlock = errors.New("unbalanced effect block")

var effectSignature = regexp.MustCompile(`\buse(?:Layout)?Effect\s*\(`)

type extractState int

const (
	stateSearching extractState = iota
	stateInBlock
	stateDone
)

// ExtractEffects returns every effect block in content, in source order.
// Blocks that never balance are skipped and reported through the returned
// error, which wraps ErrUnbalancedBlock.
func ExtractEffects(content string) ([]domain.EffectBlock, error) {
	starts := lineStarts(content)
	var (
		blocks []domain.EffectBlock
		errs   []error
	)
	for _, m := range effectSignature.FindAllStringIndex(content, -1) {
		b, err := extractBlock(content, m[1], starts)
		if err != nil {
			errs = append(errs, fmt.Errorf("effect at line %d: %w", lineAt(starts, m[0]), err))
			continue
		}
		b.StartLine = lineAt(starts, m[0])
		blocks = append(blocks, b)
	}
	return blocks, errors.Join(errs...)
}

// extractBlock scans forward from just after the call's opening parenthesis.
// Only a brace that opens the callback's own function body starts a block;
// braces inside an expression body are counted but never end the call. The
// block is done when the body brace closes or, for expression bodies, when
// the call's own parenthesis closes.
func extractBlock(content string, from int, starts []int) (domain.EffectBlock, error) {
	state := stateSearching
	braces, parens := 0, 1
	bodyStart, bodyEnd := from, -1

	for i := from; i < len(content) && state != stateDone; i++ {
		switch content[i] {
		case '{':
			if state == stateSearching && braces == 0 && parens == 1 && opensFunctionBody(content[from:i]) {
				state = stateInBlock
				bodyStart = i + 1
			}
			braces++
		case '}':
			braces--
			if braces < 0 {
				return domain.EffectBlock{}, ErrUnbalancedBlock
			}
			if state == stateInBlock && braces == 0 {
				bodyEnd = i
				state = stateDone
			}
		case '(':
			if state == stateSearching {
				parens++
			}
		case ')':
			if state == stateSearching {
				parens--
				if parens == 0 {
					bodyEnd = i
					state = stateDone
				}
			}
		}
	}
	if state != stateDone {
		return domain.EffectBlock{}, ErrUnbalancedBlock
	}

	// Expression bodies include the dependency list; braced bodies leave it
	// in the tail after the closing brace.
	tailFrom := bodyEnd + 1
	if content[bodyEnd] == ')' {
		tailFrom = from
	}
	tail := callTail(content, tailFrom, bodyEnd)

	return domain.EffectBlock{
		EndLine:      lineAt(starts, bodyEnd),
		Body:         content[bodyStart:bodyEnd],
		Dependencies: parseDependencies(tail),
	}, nil
}

// opensFunctionBody reports whether a brace following prefix starts a
// function body: an arrow or a function header's closing parenthesis.
func opensFunctionBody(prefix string) bool {
	p := strings.TrimRight(prefix, " \t\r\n")
	return strings.HasSuffix(p, "=>") || strings.HasSuffix(p, ")")
}

// callTail returns content[from:] up to and including the parenthesis that
// closes the effect call. If the call never closes, the tail stops at the end
// of the line holding bodyEnd.
func callTail(content string, from, bodyEnd int) string {
	if content[bodyEnd] == ')' {
		return content[from : bodyEnd+1]
	}
	depth := 1
	for i := from; i < len(content); i++ {
		switch content[i] {
		case '(', '{':
			depth++
		case ')', '}':
			depth--
			if depth == 0 {
				return content[from : i+1]
			}
		}
	}
	end := strings.IndexByte(content[from:], '\n')
	if end < 0 {
		return content[from:]
	}
	return content[from : from+end]
}

// parseDependencies returns nil when no trailing list exists and an empty,
// non-nil slice for an explicit []. The tail must end in ", [ ... ])".
func parseDependencies(tail string) []string {
	t := strings.TrimSpace(tail)
	if !strings.HasSuffix(t, ")") {
		return nil
	}
	t = strings.TrimSpace(strings.TrimSuffix(t, ")"))
	if !strings.HasSuffix(t, "]") {
		return nil
	}
	open := matchingOpen(t, len(t)-1)
	if open < 0 || !strings.HasSuffix(strings.TrimSpace(t[:open]), ",") {
		return nil
	}
	deps := []string{}
	for _, part := range splitTopLevel(t[open+1 : len(t)-1]) {
		if p := strings.TrimSpace(part); p != "" {
			deps = append(deps, p)
		}
	}
	return deps
}

// matchingOpen walks back from the ']' at end to its '['.
func matchingOpen(s string, end int) int {
	depth := 0
	for i := end; i >= 0; i-- {
		switch s[i] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on commas that are not nested in brackets or parens.
func splitTopLevel(s string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func lineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt converts a byte offset into a 1-based line number.
func lineAt(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
}
