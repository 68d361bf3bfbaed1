package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/sourcescan/internal/adapters/outbound/export"
	"github.com/openkraft/sourcescan/internal/application"
	"github.com/openkraft/sourcescan/internal/domain"
)

const (
	reportURI         = "sourcescan://report"
	reportMarkdownURI = "sourcescan://report.md"
)

// registerResources registers the report resources on the given server.
func registerResources(s *server.MCPServer, root string, svc *application.AnalyzeService) {
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Analysis Report",
			mcplib.WithResourceDescription("Full static analysis report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(root, svc, reportURI, "application/json", export.WriteJSON),
	)

	s.AddResource(
		mcplib.NewResource(
			reportMarkdownURI,
			"Analysis Report (Markdown)",
			mcplib.WithResourceDescription("Human-readable analysis report for the project"),
			mcplib.WithMIMEType("text/markdown"),
		),
		handleReportResource(root, svc, reportMarkdownURI, "text/markdown", export.WriteMarkdown),
	)
}

func handleReportResource(root string, svc *application.AnalyzeService, uri, mime string, write func(w io.Writer, r *domain.Report) error) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := svc.Analyze(ctx, root, application.AnalyzeOptions{})
		if err != nil {
			return nil, fmt.Errorf("analysis failed: %w", err)
		}

		var buf bytes.Buffer
		if err := write(&buf, report); err != nil {
			return nil, fmt.Errorf("rendering report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: mime,
				Text:     buf.String(),
			},
		}, nil
	}
}
