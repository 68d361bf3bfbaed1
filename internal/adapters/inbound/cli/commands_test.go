package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/sourcescan/internal/adapters/inbound/cli"
	"github.com/openkraft/sourcescan/internal/adapters/outbound/config"
	"github.com/openkraft/sourcescan/internal/domain"
)

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sourcescan dev")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	var names []string
	for _, c := range cli.NewRootCmdForTest().Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"analyze", "check", "history", "init", "mcp", "version"})
}

func TestCheckCommand_SingleFile(t *testing.T) {
	out, err := run(t, "check", "src/components/Profile.tsx", "--path", fixtureDir, "--json")
	require.NoError(t, err)

	var findings []domain.Finding
	require.NoError(t, json.Unmarshal([]byte(out), &findings))
	require.Len(t, findings, 4)
	for _, f := range findings {
		assert.Equal(t, "src/components/Profile.tsx", f.File)
	}
}

func TestCheckCommand_TUI(t *testing.T) {
	out, err := run(t, "check", "src/index.js", "--path", fixtureDir)
	require.NoError(t, err)
	assert.Contains(t, out, "src/index.js")
	assert.Contains(t, out, "No findings.")
}

func TestCheckCommand_UnknownFile(t *testing.T) {
	_, err := run(t, "check", "node_modules/lib/index.js", "--path", fixtureDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was not analyzed")
}

func TestHistoryCommand_Empty(t *testing.T) {
	out, err := run(t, "history", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No score history found.")
}

func TestHistoryCommand_AfterRuns(t *testing.T) {
	root := writeCorpus(t, map[string]string{"a.js": "// FIXME\n"})
	for i := 0; i < 2; i++ {
		_, err := run(t, "analyze", root, "--json")
		require.NoError(t, err)
	}

	out, err := run(t, "history", root, "--json")
	require.NoError(t, err)

	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 95, entries[1].QualityScore)
	assert.Equal(t, "A+", entries[1].Grade)
}

func TestInitCmd_CreatesLoadableConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created .sourcescan.yaml")

	data, err := os.ReadFile(filepath.Join(dir, ".sourcescan.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "debt_weights:")
	assert.Contains(t, string(data), "unsafe-injection: 10")

	cfg, err := config.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopN, cfg.TopN)
	assert.Equal(t, domain.DefaultComplexityHigh, cfg.Complexity.High)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sourcescan.yaml"), []byte("existing"), 0644))

	_, err := run(t, "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sourcescan.yaml"), []byte("old"), 0644))

	_, err := run(t, "init", dir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".sourcescan.yaml"))
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}

func TestMCPCommandExists(t *testing.T) {
	_, err := run(t, "mcp", "serve", "--help")
	assert.NoError(t, err)
}
