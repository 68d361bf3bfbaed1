package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/export"
	"github.com/openkraft/sourcescan/internal/adapters/outbound/history"
	"github.com/openkraft/sourcescan/internal/adapters/outbound/tui"
	"github.com/openkraft/sourcescan/internal/application"
	"github.com/openkraft/sourcescan/internal/domain"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		jsonOutput     bool
		markdownOutput bool
		sarifPath      string
		badge          bool
		compare        bool
		failOnCritical bool
		minScore       int
		excludeDirs    []string
		extensions     []string
		workers        int
		topN           int
		noHistory      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a source tree and print a scored report",
		Long:  "Scan every source file under path, run all detectors and scorers, and print the aggregated report.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolvePath(args)
			if err != nil {
				return err
			}

			logger := newLogger(cmd)
			svc := newAnalyzeService(logger)
			hist := history.New()

			opts := application.AnalyzeOptions{
				ExcludeDirs: excludeDirs,
				Extensions:  extensions,
				Workers:     workers,
				TopN:        topN,
			}

			if compare {
				prev, err := hist.Latest(absPath)
				if err != nil {
					logger.Warn("previous report unavailable", "error", err)
				}
				opts.Previous = prev
			}

			report, err := svc.Analyze(cmd.Context(), absPath, opts)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}

			if !noHistory {
				if err := hist.Save(absPath, report); err != nil {
					logger.Warn("saving history", "error", err)
				}
			}

			if sarifPath != "" {
				if err := writeSARIFFile(sarifPath, report); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				err = export.WriteJSON(out, report)
			case markdownOutput:
				err = export.WriteMarkdown(out, report)
			case badge:
				_, err = fmt.Fprintln(out, export.BadgeURL(report.Summary.QualityScore))
			default:
				_, err = fmt.Fprint(out, tui.RenderReport(report))
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			if failOnCritical && report.Summary.HasCritical {
				return fmt.Errorf("%d critical finding(s) present", report.Summary.BySeverity[domain.SeverityCritical])
			}

			gate := minScore
			if !cmd.Flags().Changed("min-score") {
				cfg, err := svc.LoadConfig(absPath, opts)
				if err != nil {
					return err
				}
				gate = cfg.MinScore
			}
			if report.Summary.QualityScore < gate {
				return fmt.Errorf("quality score %d is below minimum %d", report.Summary.QualityScore, gate)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&markdownOutput, "markdown", false, "Output the report as Markdown")
	cmd.Flags().StringVar(&sarifPath, "sarif", "", "Also write a SARIF 2.1.0 log to this file")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().BoolVar(&compare, "compare", false, "Compare against the previous stored report")
	cmd.Flags().BoolVar(&failOnCritical, "fail-on-critical", false, "Exit 1 when any critical finding exists")
	cmd.Flags().IntVar(&minScore, "min-score", 0, "Exit 1 when the quality score is below this value (defaults to min_score from config)")
	cmd.Flags().StringSliceVar(&excludeDirs, "exclude", nil, "Additional directory names to skip")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "File extensions to scan (replaces the default list)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of files analyzed in parallel (0 = CPU count)")
	cmd.Flags().IntVar(&topN, "top", 0, "Length of the top-N file rankings")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in .sourcescan/history")

	return cmd
}

func writeSARIFFile(path string, report *domain.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sarif file: %w", err)
	}
	defer f.Close()
	if err := export.WriteSARIF(f, report); err != nil {
		return fmt.Errorf("writing sarif: %w", err)
	}
	return nil
}
