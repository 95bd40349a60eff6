package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/huangsam/codequal/core"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	runner  contract.ToolRunner
}

func (h *toolHandler) handleAnalyzeProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("directory", ""); d != "" {
		abs, err := filepath.Abs(d)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid directory: %v", err)), nil
		}
		cfg.RootPath = abs
	}
	if l := request.GetString("language", ""); l != "" {
		cfg.Language = l
	}
	if cfg.Language == "" {
		return mcp.NewToolResultError("language is required"), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}

	report, err := core.GetAnalysisReport(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	trimmed := *report
	trimmed.FileScores = report.Top(cfg.ResultLimit)
	jsonData, _ := json.MarshalIndent(trimmed, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListLanguages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := core.ListLanguages(h.runner, h.baseCfg.Tools)
	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
