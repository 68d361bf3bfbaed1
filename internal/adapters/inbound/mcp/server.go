package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/sourcescan/internal/application"
)

// NewSourceScanMCPServer creates an MCP server exposing the analysis of root
// as tools and resources. Every call runs a fresh analysis.
func NewSourceScanMCPServer(root, version string, svc *application.AnalyzeService) *server.MCPServer {
	s := server.NewMCPServer(
		"sourcescan",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, root, svc)
	registerResources(s, root, svc)

	return s
}
