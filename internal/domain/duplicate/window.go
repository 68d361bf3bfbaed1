// Package duplicate finds repeated line windows across a corpus with a plain
// content-hash index. Hash collisions are treated as equal content.
package duplicate

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// WindowSize is the number of lines hashed together.
	WindowSize = 5
	// MinLineLength drops short lines such as closing braces.
	MinLineLength = 11
	// MaxTrivialLength is the longest normalized window still considered trivial.
	MaxTrivialLength = 50
)

// Window is one normalized, hashed span of WindowSize lines.
type Window struct {
	Hash  string
	Text  string
	Start int // 0-based index of the first line
}

// Windows slides over lines and returns every distinctive window in order.
func Windows(lines []string) []Window {
	var out []Window
	for i := 0; i+WindowSize <= len(lines); i++ {
		text, ok := Normalize(lines[i : i+WindowSize])
		if !ok {
			continue
		}
		out = append(out, Window{Hash: Hash(text), Text: text, Start: i})
	}
	return out
}

// Normalize trims each line, drops short ones and joins the rest. It reports
// false when the result is too short to be distinctive.
func Normalize(lines []string) (string, bool) {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if len(l) < MinLineLength {
			continue
		}
		kept = append(kept, l)
	}
	text := strings.Join(kept, "\n")
	if len(text) <= MaxTrivialLength {
		return "", false
	}
	return text, true
}

// Hash returns the hex SHA-256 of normalized text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
