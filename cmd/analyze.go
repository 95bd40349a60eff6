package cmd

import (
	"errors"

	"github.com/huangsam/codequal/core"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeSetup runs the shared setup and insists on a language.
func analyzeSetup(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(cmd, args); err != nil {
		return err
	}
	return contract.RequireLanguage(cfg)
}

// analyzeCmd runs one language plugin over a directory and prints the report.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [directory]",
	Short: "Rank the most complex files of a project",
	Long: `Locate the source files of a language under a directory, score them with
the language's complexity tool and print a ranked report.

The report lists the top files by score and summarizes the run:
- Total number of files and lines of code
- Average complexity across all files
- Average complexity of the top 5% of files

Examples:
  # Analyze a Ruby project in the current directory
  codequal analyze --language ruby

  # Analyze a Go module and emit JSON
  codequal analyze ./service --language go --output json

  # Fail CI when the hottest files get too complex
  codequal analyze . -L ruby --threshold 40`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: analyzeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteAnalyze(rootCtx, cfg, cacheManager)
		if errors.Is(err, contract.ErrThresholdExceeded) {
			contract.LogFatal("Complexity threshold exceeded", err)
		}
		if err != nil {
			contract.LogFatal("Analysis failed", err)
		}
	},
}
