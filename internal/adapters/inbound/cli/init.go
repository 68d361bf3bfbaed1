package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/config"
	"github.com/openkraft/sourcescan/internal/domain"
	"github.com/openkraft/sourcescan/internal/domain/scoring"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .sourcescan.yaml configuration file",
		Long:  "Create a .sourcescan.yaml holding the default limits and debt weights, ready to edit.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolvePath(args)
			if err != nil {
				return err
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig()), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .sourcescan.yaml")

	return cmd
}

func generateConfig() string {
	var b strings.Builder
	b.WriteString("# sourcescan configuration\n\n")

	b.WriteString("# Directory names skipped in addition to the built-in set:\n")
	fmt.Fprintf(&b, "# %s\n", strings.Join(domain.DefaultExcludeDirs, ", "))
	b.WriteString("exclude_dirs: []\n\n")

	b.WriteString("# extensions:\n")
	for _, ext := range domain.DefaultExtensions {
		fmt.Fprintf(&b, "#   - %s\n", ext)
	}
	b.WriteString("\n")

	b.WriteString("workers: 0 # 0 uses every CPU\n")
	fmt.Fprintf(&b, "top_n: %d\n\n", domain.DefaultTopN)

	b.WriteString("complexity:\n")
	fmt.Fprintf(&b, "  medium: %d\n", domain.DefaultComplexityMedium)
	fmt.Fprintf(&b, "  high: %d\n\n", domain.DefaultComplexityHigh)

	weights := scoring.DefaultDebtWeights()
	categories := make([]string, 0, len(weights))
	for c := range weights {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)
	b.WriteString("debt_weights:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "  %s: %d\n", c, weights[domain.Category(c)])
	}
	b.WriteString("\n")

	b.WriteString("# disabled_detectors:\n#   - debug-statement\n\n")
	b.WriteString("min_score: 0\n")
	return b.String()
}
