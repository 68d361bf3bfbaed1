package scanner_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/scanner"
	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func defaultOptions() domain.ScanOptions {
	return domain.DefaultConfig().ScanOptions()
}

func TestFileScanner_ReadsAllowedExtensionsInOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/b.ts", "export const b = 1;\n")
	writeFile(t, root, "src/a.jsx", "line one\nline two\n")
	writeFile(t, root, "index.js", "x")
	writeFile(t, root, "README.md", "# readme")
	writeFile(t, root, "styles.css", "body {}")

	corpus, err := scanner.New(nil).Scan(root, defaultOptions())
	require.NoError(t, err)

	var paths []string
	for _, f := range corpus.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"index.js", "src/a.jsx", "src/b.ts"}, paths)
	assert.Equal(t, 2, corpus.Files[1].LineCount)
	assert.Equal(t, ".jsx", corpus.Files[1].Extension)
	assert.Equal(t, "line one\nline two\n", corpus.Files[1].Content)
}

func TestFileScanner_PrunesExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/lib/index.js", "x")
	writeFile(t, root, "dist/bundle.js", "x")
	writeFile(t, root, "app/.git/hooks/pre.js", "x")
	writeFile(t, root, "generated/api.ts", "x")
	writeFile(t, root, "app/main.ts", "x")

	opts := defaultOptions()
	opts.ExcludeDirs = append(opts.ExcludeDirs, "generated")
	corpus, err := scanner.New(nil).Scan(root, opts)
	require.NoError(t, err)

	require.Len(t, corpus.Files, 1)
	assert.Equal(t, "app/main.ts", corpus.Files[0].Path)
}

func TestFileScanner_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.svelte", "x")
	writeFile(t, root, "b.js", "x")

	corpus, err := scanner.New(nil).Scan(root, domain.ScanOptions{Extensions: []string{"svelte"}})
	require.NoError(t, err)
	require.Len(t, corpus.Files, 1)
	assert.Equal(t, "a.svelte", corpus.Files[0].Path)
}

func TestFileScanner_MissingRootIsFatal(t *testing.T) {
	_, err := scanner.New(nil).Scan(filepath.Join(t.TempDir(), "nope"), defaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRootNotFound)
}

func TestFileScanner_RootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "x")
	_, err := scanner.New(nil).Scan(filepath.Join(root, "a.js"), defaultOptions())
	assert.ErrorIs(t, err, domain.ErrRootNotFound)
}

func TestFileScanner_UnreadableFileIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("file permissions are not enforced")
	}
	root := t.TempDir()
	writeFile(t, root, "ok.js", "x")
	writeFile(t, root, "locked.js", "x")
	require.NoError(t, os.Chmod(filepath.Join(root, "locked.js"), 0o000))
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(root, "locked.js"), 0o644) })

	corpus, err := scanner.New(nil).Scan(root, defaultOptions())
	require.NoError(t, err)
	require.Len(t, corpus.Files, 1)
	assert.Equal(t, "ok.js", corpus.Files[0].Path)
	require.Len(t, corpus.Failures, 1)
	assert.Equal(t, "locked.js", corpus.Failures[0].File)
}

func TestFileScanner_EmptyCorpus(t *testing.T) {
	corpus, err := scanner.New(nil).Scan(t.TempDir(), defaultOptions())
	require.NoError(t, err)
	assert.Empty(t, corpus.Files)
}
