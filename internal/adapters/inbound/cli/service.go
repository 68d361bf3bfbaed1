package cli

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/config"
	"github.com/openkraft/sourcescan/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/sourcescan/internal/adapters/outbound/scanner"
	"github.com/openkraft/sourcescan/internal/application"
	"github.com/openkraft/sourcescan/internal/domain/heuristic"
	"github.com/openkraft/sourcescan/internal/logging"
)

// newLogger builds the run logger from --log-level. Logs go to the command's
// stderr so report output on stdout stays parseable.
func newLogger(cmd *cobra.Command) hclog.Logger {
	flag, _ := cmd.Flags().GetString("log-level")
	return logging.New("sourcescan", logging.ResolveLevel(flag), cmd.ErrOrStderr())
}

func newAnalyzeService(logger hclog.Logger) *application.AnalyzeService {
	return application.NewAnalyzeService(
		scanner.New(logger.Named("scanner")),
		heuristic.New(),
		config.New(),
		gitinfo.New(),
		logger,
	)
}

func resolvePath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return absPath, nil
}
