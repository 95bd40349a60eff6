// Package core has core logic for analysis orchestration, summaries and ranking.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/codequal/core/plugin"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/outwriter"
	"github.com/huangsam/codequal/schema"
)

// ExecuteAnalyze runs the analysis and prints the report.
// It serves as the main entry point for the 'analyze' command.
// When the threshold gate trips, the report is still printed and
// contract.ErrThresholdExceeded is returned.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := runAnalysis(ctx, cfg, mgr, contract.NewLocalToolRunner(), contract.NewLocalGitClient())
	if err != nil {
		return err
	}
	if err := outwriter.WriteReport(report, cfg, time.Since(start)); err != nil {
		return err
	}
	return CheckThreshold(report, cfg.Threshold)
}

// GetAnalysisReport runs the analysis and returns the report without printing it.
// It serves agent-facing callers, so progress output is always suppressed.
func GetAnalysisReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.Report, error) {
	return runAnalysis(withSuppressProgress(ctx), cfg, mgr, contract.NewLocalToolRunner(), contract.NewLocalGitClient())
}

// CheckThreshold fails when the 95th percentile average is above threshold.
// A threshold of zero disables the check.
func CheckThreshold(report *schema.Report, threshold float64) error {
	if threshold <= 0 || report.Summary.Percentile95Complexity <= threshold {
		return nil
	}
	return fmt.Errorf("%w: 95th percentile average %.2f is above %.2f",
		contract.ErrThresholdExceeded, report.Summary.Percentile95Complexity, threshold)
}

// ListLanguages describes every registered plugin, with overrides applied,
// and whether its tool can be found.
func ListLanguages(runner contract.ToolRunner, tools map[string]contract.ToolOverride) []schema.LanguageInfo {
	analyzer := NewAnalyzer(runner)
	analyzer.Tools = tools

	var infos []schema.LanguageInfo
	for _, id := range plugin.Default().IDs() {
		p, err := analyzer.Plugin(id)
		if err != nil {
			continue
		}
		_, lookErr := runner.LookPath(p.Tool.Binary)
		infos = append(infos, schema.LanguageInfo{
			ID:         p.ID,
			Name:       p.Name,
			Mode:       p.Mode,
			Extensions: p.Extensions,
			Tool:       p.Command(),
			Available:  lookErr == nil,
		})
	}
	return infos
}

// runAnalysis builds an analyzer from cfg, runs it and records the run.
func runAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, runner contract.ToolRunner, client contract.GitClient) (*schema.Report, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	analyzer := NewAnalyzer(runner)
	analyzer.Workers = cfg.Workers
	analyzer.Excludes = cfg.Excludes
	analyzer.Tools = cfg.Tools
	if mgr != nil {
		if store := mgr.GetScoreStore(); store != nil {
			pruneScoreCache(store)
			analyzer.Cache = store
		}
	}
	if cfg.Progress && !shouldSuppressProgress(ctx) {
		analyzer.Observer = outwriter.NewProgressObserver(os.Stderr, fmt.Sprintf("Analyzing %s", cfg.Language))
	}

	contract.LogInfo("analyzing project", "language", cfg.Language, "root", cfg.RootPath)
	start := time.Now()
	report, err := analyzer.Run(ctx, cfg.Language, cfg.RootPath)
	if err != nil {
		return nil, err
	}
	end := time.Now()
	contract.LogInfo("analysis complete", "files", report.Summary.TotalFiles, "duration", end.Sub(start))

	if mgr != nil {
		if store := mgr.GetHistoryStore(); store != nil {
			recordRun(ctx, store, client, cfg, report, start, end)
		}
	}
	return report, nil
}
