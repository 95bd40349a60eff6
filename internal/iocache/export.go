package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/internal/parquet"
)

// ErrNoHistory is returned when there is nothing to export.
var ErrNoHistory = errors.New("no analysis history found to export")

// ExecuteHistoryExport writes the run history to two Parquet files named
// after outputFile: <outputFile>.analysis_runs.parquet and
// <outputFile>.file_scores.parquet.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total file records: %d\n", status.TableSizes[fileScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	scores, err := store.GetAllFileScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve file scores: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	parquetScores := parquet.ConvertFileScoreRecords(scores)
	scoresFile := outputFile + ".file_scores.parquet"
	if err := parquet.WriteFileScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write file scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d file score records to: %s\n", len(parquetScores), scoresFile)
	return nil
}
