package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// recordRun stores a finished run and its file scores in the history store.
// Tracking failures are logged and never fail the analysis.
func recordRun(ctx context.Context, store contract.HistoryStore, client contract.GitClient, cfg *contract.Config, report *schema.Report, start, end time.Time) {
	repoRoot, commitHash := repoIdentity(ctx, client, report.Root)

	configParams := map[string]any{
		"mode":         string(report.Mode),
		"tool":         report.Tool,
		"workers":      cfg.Workers,
		"result_limit": cfg.ResultLimit,
		"excludes":     cfg.Excludes,
	}
	runID, err := store.BeginRun(start, report.Language, report.Root, repoRoot, commitHash, configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}

	for _, entry := range report.FileScores {
		if err := store.RecordFileScore(runID, entry, report.Bands.Label(entry.Score)); err != nil {
			logTrackingError("RecordFileScore", entry.Path, err)
		}
	}

	if err := store.EndRun(runID, end, report.Summary); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// repoIdentity returns the Git top level and HEAD commit enclosing root.
// Both are empty when root is not inside a repository.
func repoIdentity(ctx context.Context, client contract.GitClient, root string) (repoRoot, commitHash string) {
	repoRoot, err := client.GetRepoRoot(ctx, root)
	if err != nil {
		contract.LogDebug("no repository recorded for run", "root", root, "err", err)
		return "", ""
	}
	commitHash, err = client.GetRepoHash(ctx, repoRoot)
	if err != nil {
		contract.LogDebug("no commit recorded for run", "root", repoRoot, "err", err)
		return repoRoot, ""
	}
	return repoRoot, commitHash
}

// logTrackingError logs database tracking errors without disrupting analysis.
func logTrackingError(operation, path string, err error) {
	contract.LogWarn(fmt.Sprintf("Run tracking failed for %s on %s", operation, path), err)
}
