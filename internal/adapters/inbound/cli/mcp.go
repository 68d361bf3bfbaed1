package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/openkraft/sourcescan/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the sourcescan MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start sourcescan MCP server (stdio)",
		Long:  "Start the sourcescan MCP server using stdio transport so coding assistants can request reports and findings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := resolvePath([]string{projectPath})
			if err != nil {
				return err
			}
			svc := newAnalyzeService(newLogger(cmd))
			s := mcpadapter.NewSourceScanMCPServer(absPath, version, svc)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path (defaults to current working directory)")

	return cmd
}
