// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the codequal MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Code Quality Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		runner:  contract.NewLocalToolRunner(),
	}

	s.AddTool(mcp.NewTool("analyze_project",
		mcp.WithDescription("Run the complexity tool for a language over a project and return the ranked report as JSON."),
		mcp.WithString("directory", mcp.Description("Project root to analyze (defaults to the configured root).")),
		mcp.WithString("language", mcp.Description("Language id, such as 'ruby' or 'go'. Defaults to the configured language.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of files returned.")),
	), h.handleAnalyzeProject)

	s.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List supported languages, their analysis tools and whether each tool is installed."),
	), h.handleListLanguages)

	return s
}

// StartMCPServer starts the codequal MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
