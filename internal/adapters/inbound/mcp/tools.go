package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/sourcescan/internal/application"
	"github.com/openkraft/sourcescan/internal/domain"
)

// registerTools registers all sourcescan MCP tools on the given server.
func registerTools(s *server.MCPServer, root string, svc *application.AnalyzeService) {
	// 1. sourcescan_analyze
	s.AddTool(
		mcplib.NewTool("sourcescan_analyze",
			mcplib.WithDescription("Runs the full static analysis and returns the report as JSON"),
		),
		handleAnalyze(root, svc),
	)

	// 2. sourcescan_check_file
	s.AddTool(
		mcplib.NewTool("sourcescan_check_file",
			mcplib.WithDescription("Returns the metrics and findings for a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file relative to the project root"),
			),
		),
		handleCheckFile(root, svc),
	)

	// 3. sourcescan_findings
	s.AddTool(
		mcplib.NewTool("sourcescan_findings",
			mcplib.WithDescription("Lists findings, optionally filtered by category and minimum severity"),
			mcplib.WithString("category", mcplib.Description("Finding category, e.g. missing-dependency-list")),
			mcplib.WithString("min_severity", mcplib.Description("One of low, medium, high, critical")),
			mcplib.WithNumber("limit", mcplib.Description("Maximum number of findings to return (0 for all)")),
		),
		handleFindings(root, svc),
	)
}

func handleAnalyze(root string, svc *application.AnalyzeService) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := svc.Analyze(ctx, root, application.AnalyzeOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// fileReport is the sourcescan_check_file payload.
type fileReport struct {
	File     string              `json:"file"`
	Metrics  *domain.FileMetrics `json:"metrics,omitempty"`
	Findings []domain.Finding    `json:"findings"`
}

func handleCheckFile(root string, svc *application.AnalyzeService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		file = filepath.ToSlash(filepath.Clean(file))

		report, err := svc.Analyze(ctx, root, application.AnalyzeOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}

		result := fileReport{File: file, Findings: []domain.Finding{}}
		for i := range report.Files {
			if report.Files[i].Path == file {
				result.Metrics = &report.Files[i]
				break
			}
		}
		if result.Metrics == nil {
			return errorResult(fmt.Sprintf("file %q was not analyzed (excluded, unsupported extension or missing)", file)), nil
		}
		for _, f := range report.Findings {
			if f.File == file {
				result.Findings = append(result.Findings, f)
			}
		}
		return jsonResult(result)
	}
}

func handleFindings(root string, svc *application.AnalyzeService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		category, _ := args["category"].(string)
		minSeverity := domain.SeverityLow
		if raw, _ := args["min_severity"].(string); raw != "" {
			sev, ok := domain.ParseSeverity(raw)
			if !ok {
				return errorResult(fmt.Sprintf("unknown severity %q", raw)), nil
			}
			minSeverity = sev
		}
		// JSON numbers decode as float64.
		limit, _ := args["limit"].(float64)

		report, err := svc.Analyze(ctx, root, application.AnalyzeOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("analysis failed: %v", err)), nil
		}
		return jsonResult(FilterFindings(report.Findings, domain.Category(category), minSeverity, int(limit)))
	}
}

// FilterFindings keeps findings of category (any when empty) at or above
// minSeverity, preserving report order. A positive limit truncates.
func FilterFindings(findings []domain.Finding, category domain.Category, minSeverity domain.Severity, limit int) []domain.Finding {
	out := []domain.Finding{}
	for _, f := range findings {
		if category != "" && f.Category != category {
			continue
		}
		if f.Severity.Rank() < minSeverity.Rank() {
			continue
		}
		out = append(out, f)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
