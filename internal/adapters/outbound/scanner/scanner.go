package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/openkraft/sourcescan/internal/domain"
)

// MaxFileSize caps how much of a single file is read. Larger files are
// recorded as failures and skipped.
const MaxFileSize = 4 << 20

// FileScanner implements domain.CorpusScanner by walking the filesystem.
type FileScanner struct {
	logger hclog.Logger
}

var _ domain.CorpusScanner = (*FileScanner)(nil)

func New(logger hclog.Logger) *FileScanner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &FileScanner{logger: logger}
}

// Scan reads every allowed file under root. Excluded directories are pruned
// by name at any depth. Paths in the corpus are slash-separated and relative
// to root, in lexicographic order.
func (s *FileScanner) Scan(root string, opts domain.ScanOptions) (*domain.Corpus, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrRootNotFound, root)
	}

	skip := make(map[string]bool, len(opts.ExcludeDirs))
	for _, d := range opts.ExcludeDirs {
		skip[strings.Trim(d, "/")] = true
	}
	allowed := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		allowed[domain.NormalizeExtension(e)] = true
	}

	corpus := &domain.Corpus{Root: absRoot}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		rel := relPath(absRoot, path)
		if walkErr != nil {
			if path == absRoot {
				return walkErr
			}
			s.fail(corpus, rel, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !allowed[ext] {
			return nil
		}

		f, err := readSourceFile(path, rel, ext)
		if err != nil {
			s.fail(corpus, rel, err)
			return nil
		}
		corpus.Files = append(corpus.Files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	sort.Slice(corpus.Files, func(i, j int) bool { return corpus.Files[i].Path < corpus.Files[j].Path })
	sort.Slice(corpus.Failures, func(i, j int) bool { return corpus.Failures[i].File < corpus.Failures[j].File })
	return corpus, nil
}

func (s *FileScanner) fail(corpus *domain.Corpus, rel string, err error) {
	s.logger.Warn("skipping unreadable file", "path", rel, "error", err)
	corpus.Failures = append(corpus.Failures, domain.Failure{File: rel, Error: err.Error()})
}

func readSourceFile(path, rel, ext string) (domain.SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceFile{}, err
	}
	if info.Size() > MaxFileSize {
		return domain.SourceFile{}, fmt.Errorf("file size %d exceeds limit %d", info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SourceFile{}, err
	}
	content := string(data)
	return domain.SourceFile{
		Path:      rel,
		Content:   content,
		LineCount: len(domain.SplitLines(content)),
		Extension: ext,
	}, nil
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
