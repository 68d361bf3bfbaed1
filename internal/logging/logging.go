// Package logging builds the hclog loggers used across sourcescan.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel keeps the console quiet unless something goes wrong.
const DefaultLevel = "warn"

// EnvLevel overrides the level when the flag is left at its default.
const EnvLevel = "SOURCESCAN_LOG_LEVEL"

// New returns a named logger writing to w. An empty or unknown level
// falls back to DefaultLevel.
func New(name, level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		Level:       ParseLevel(level),
		Output:      w,
		DisableTime: true,
	})
}

// ParseLevel converts a level name to hclog.Level. Unknown names fall back
// to warn.
func ParseLevel(level string) hclog.Level {
	if l := hclog.LevelFromString(level); l != hclog.NoLevel {
		return l
	}
	return hclog.Warn
}

// ResolveLevel prefers an explicit flag value, then the environment.
func ResolveLevel(flag string) string {
	if flag != "" && flag != DefaultLevel {
		return flag
	}
	if env := os.Getenv(EnvLevel); env != "" {
		return env
	}
	return DefaultLevel
}
