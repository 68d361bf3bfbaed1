package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/openkraft/sourcescan/internal/domain/detect"
	"github.com/openkraft/sourcescan/internal/domain/duplicate"
	"github.com/openkraft/sourcescan/internal/domain/report"
	"github.com/openkraft/sourcescan/internal/domain/scoring"
)

// AnalyzeService orchestrates the analysis pipeline:
// config → scan → per-file workers → duplicate pass → aggregate.
type AnalyzeService struct {
	scanner      domain.CorpusScanner
	analyzer     domain.TextAnalyzer
	configLoader domain.ConfigLoader
	gitInfo      domain.GitInfo
	logger       hclog.Logger
}

// AnalyzeOptions are per-run overrides applied on top of the loaded config.
type AnalyzeOptions struct {
	ExcludeDirs []string
	Extensions  []string
	Workers     int
	TopN        int
	// Previous, when set, is compared against the new report.
	Previous *domain.Report
}

func NewAnalyzeService(
	scanner domain.CorpusScanner,
	analyzer domain.TextAnalyzer,
	configLoader domain.ConfigLoader,
	gitInfo domain.GitInfo,
	logger hclog.Logger,
) *AnalyzeService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &AnalyzeService{
		scanner:      scanner,
		analyzer:     analyzer,
		configLoader: configLoader,
		gitInfo:      gitInfo,
		logger:       logger,
	}
}

// LoadConfig returns the project config with opts applied.
func (s *AnalyzeService) LoadConfig(root string, opts AnalyzeOptions) (domain.ProjectConfig, error) {
	cfg, err := s.configLoader.Load(root)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	cfg.ExcludeDirs = append(cfg.ExcludeDirs, opts.ExcludeDirs...)
	if len(opts.Extensions) > 0 {
		cfg.Extensions = opts.Extensions
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.TopN > 0 {
		cfg.TopN = opts.TopN
	}
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// Analyze runs the full analysis over root. Only configuration errors and a
// missing root are fatal; per-file problems end up in the report.
func (s *AnalyzeService) Analyze(ctx context.Context, root string, opts AnalyzeOptions) (*domain.Report, error) {
	cfg, err := s.LoadConfig(root, opts)
	if err != nil {
		return nil, err
	}

	corpus, err := s.scanner.Scan(root, cfg.ScanOptions())
	if err != nil {
		return nil, fmt.Errorf("scanning corpus: %w", err)
	}
	s.logger.Debug("corpus scanned", "root", root, "files", len(corpus.Files), "failures", len(corpus.Failures))

	registry := detect.Default(s.analyzer).Without(cfg.DisabledDetectors...)
	debt := scoring.NewDebtScorer(cfg.DebtWeights)
	limits := cfg.EffectiveComplexity()

	results := make([]report.FileResult, len(corpus.Files))
	windows := make([][]duplicate.Window, len(corpus.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.EffectiveWorkers())
	for i, f := range corpus.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.analyzeFile(f, registry, debt, limits)
			if !cfg.IsDetectorDisabled(duplicate.DetectorName) {
				windows[i] = duplicate.Windows(f.Lines())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyzing files: %w", err)
	}

	// The index is fed in path order so the first-seen location is stable.
	order := make([]int, len(corpus.Files))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return corpus.Files[order[a]].Path < corpus.Files[order[b]].Path })

	index := duplicate.NewIndex()
	var dupFindings []domain.Finding
	for _, i := range order {
		dupFindings = append(dupFindings, duplicate.Detect(index, corpus.Files[i].Path, windows[i])...)
	}

	for _, fail := range corpus.Failures {
		s.logger.Warn("file skipped", "file", fail.File, "error", fail.Error)
	}

	r := report.Aggregate(report.Input{
		Root:              root,
		CommitHash:        s.commitHash(root),
		Timestamp:         time.Now().UTC(),
		Files:             results,
		DuplicateFindings: dupFindings,
		Duplicates:        index.Blocks(),
		ScanFailures:      corpus.Failures,
		TopN:              cfg.EffectiveTopN(),
		Previous:          opts.Previous,
	})
	s.logger.Debug("analysis complete",
		"files", r.Summary.FilesScanned,
		"findings", r.Summary.TotalFindings,
		"score", r.Summary.QualityScore)
	return r, nil
}

// analyzeFile runs every per-file step. Detector failures are isolated: the
// failing detector is recorded and the remaining detectors still run.
func (s *AnalyzeService) analyzeFile(
	f domain.SourceFile,
	registry *detect.Registry,
	debt *scoring.DebtScorer,
	limits domain.ComplexityLimits,
) report.FileResult {
	res := report.FileResult{
		Path:       f.Path,
		Lines:      f.LineCount,
		Complexity: s.analyzer.Complexity(f.Content),
	}

	effectBlocks := -1
	for _, d := range registry.Detectors() {
		run := func() ([]domain.Finding, error) { return d.Detect(f.Content) }
		if ed, ok := d.(*detect.EffectDetector); ok {
			run = func() ([]domain.Finding, error) {
				effectBlocks = 0
				findings, n, err := ed.Analyze(f.Content)
				effectBlocks = n
				return findings, err
			}
		}
		findings, err := detect.SafeRun(d.Name(), run)
		if err != nil {
			s.logger.Warn("detector failed", "detector", d.Name(), "file", f.Path, "error", err)
			res.Findings = append(res.Findings, detect.FailureFinding(d.Name(), f.Path, err))
			res.Failures = append(res.Failures, domain.Failure{File: f.Path, Detector: d.Name(), Error: err.Error()})
			continue
		}
		for i := range findings {
			findings[i].File = f.Path
		}
		res.Findings = append(res.Findings, findings...)
	}

	if cf := scoring.ComplexityFinding(res.Complexity, limits); cf != nil {
		cf.File = f.Path
		cf.Detector = string(domain.CategoryComplexity)
		res.Findings = append(res.Findings, *cf)
	}
	res.DebtScore = debt.FileScore(res.Findings)

	// The effect detector already counted the balanced blocks unless it
	// was disabled.
	if effectBlocks < 0 {
		blocks, _ := s.analyzer.EffectBlocks(f.Content)
		effectBlocks = len(blocks)
	}
	res.EffectBlocks = effectBlocks
	return res
}

func (s *AnalyzeService) commitHash(root string) string {
	if s.gitInfo == nil || !s.gitInfo.IsGitRepo(root) {
		return ""
	}
	hash, err := s.gitInfo.CommitHash(root)
	if err != nil {
		s.logger.Debug("commit hash unavailable", "root", root, "error", err)
		return ""
	}
	return hash
}
