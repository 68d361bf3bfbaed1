package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/tui"
	"github.com/openkraft/sourcescan/internal/application"
	"github.com/openkraft/sourcescan/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		path       string
	)

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Show the findings for a single file",
		Long:  "Analyze the project and print only the metrics and findings of one file, given relative to --path.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolvePath([]string{path})
			if err != nil {
				return err
			}
			file := filepath.ToSlash(filepath.Clean(args[0]))

			svc := newAnalyzeService(newLogger(cmd))
			report, err := svc.Analyze(cmd.Context(), absPath, application.AnalyzeOptions{})
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			var metrics *domain.FileMetrics
			for i := range report.Files {
				if report.Files[i].Path == file {
					metrics = &report.Files[i]
					break
				}
			}
			if metrics == nil {
				return fmt.Errorf("file %s was not analyzed (excluded, unsupported extension or missing)", file)
			}

			findings := []domain.Finding{}
			for _, f := range report.Findings {
				if f.File == file {
					findings = append(findings, f)
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(findings)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  complexity %d  debt %d\n\n", file, metrics.Complexity, metrics.DebtScore)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFindings(findings))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output findings as JSON")
	cmd.Flags().StringVar(&path, "path", ".", "Project path to analyze")

	return cmd
}
