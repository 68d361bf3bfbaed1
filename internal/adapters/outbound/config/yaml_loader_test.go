package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/openkraft/sourcescan/internal/adapters/outbound/config"
	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, appconfig.FileName), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
exclude_dirs: [generated, storybook-static]
extensions: [js, .ts]
workers: 4
top_n: 5
complexity:
  medium: 15
  high: 30
disabled_detectors: [debug-statement]
debt_weights:
  marker-comment: 1
min_score: 70
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"generated", "storybook-static"}, cfg.ExcludeDirs)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 5, cfg.EffectiveTopN())
	assert.Equal(t, domain.ComplexityLimits{Medium: 15, High: 30}, cfg.EffectiveComplexity())
	assert.True(t, cfg.IsDetectorDisabled("debug-statement"))
	assert.Equal(t, 1, cfg.DebtWeights["marker-comment"])
	assert.Equal(t, 70, cfg.MinScore)
	assert.Equal(t, []string{".js", ".ts"}, cfg.ScanOptions().Extensions)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .sourcescan.yaml")
}

func TestYAMLLoader_UnknownKeyIsRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "exclude_dir: [oops]\n")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclude_dir")
}

func TestYAMLLoader_ValidationError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
complexity:
  medium: 20
  high: 10
`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .sourcescan.yaml")
	assert.Contains(t, err.Error(), "complexity.high")
}
