package cmd

import (
	"github.com/huangsam/codequal/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the codequal MCP server",
	Long: `Launch an MCP server on stdio that allows AI agents to run complexity
analysis via the analyze_project and list_languages tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
