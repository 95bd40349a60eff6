package cmd

import (
	"github.com/huangsam/codequal/core"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/outwriter"
	"github.com/spf13/cobra"
)

// languagesCmd lists the registered language plugins.
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and their analysis tools",
	Long: `Show every registered language plugin with its analysis mode, file
extensions, the tool command it runs and whether that tool is on PATH.

Tool overrides from the config file are applied before listing.

Examples:
  # List languages as a table
  codequal languages

  # List languages as JSON
  codequal languages --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		infos := core.ListLanguages(contract.NewLocalToolRunner(), cfg.Tools)
		if err := outwriter.WriteLanguages(infos, cfg); err != nil {
			contract.LogFatal("Failed to list languages", err)
		}
	},
}
