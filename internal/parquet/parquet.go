// Package parquet provides row types and writers for exporting codequal
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/codequal/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun is one recorded analysis run.
// This struct maps to the codequal_analysis_runs database table.
type AnalysisRun struct {
	AnalysisID int64  `parquet:"analysis_id,snappy"`
	Language   string `parquet:"language,dict,snappy"`
	RootPath   string `parquet:"root_path,snappy"`

	// RepoRoot is the top level of the enclosing Git repository (nullable)
	RepoRoot *string `parquet:"repo_root,optional,snappy"`

	// CommitHash is the HEAD commit of the analyzed repository (nullable)
	CommitHash *string `parquet:"commit_hash,optional,snappy"`

	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int32     `parquet:"run_duration_ms,optional,snappy"`

	TotalFiles             int32   `parquet:"total_files,snappy"`
	TotalLOC               int64   `parquet:"total_loc,snappy"`
	AverageComplexity      float64 `parquet:"average_complexity,snappy"`
	Percentile95Complexity float64 `parquet:"percentile_95_complexity,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileScore is the score of a single file in a run.
// This struct maps to the codequal_file_scores database table.
type FileScore struct {
	AnalysisID int64   `parquet:"analysis_id,snappy"`
	FilePath   string  `parquet:"file_path,snappy"`
	Score      float64 `parquet:"score,snappy"`
	Lines      int32   `parquet:"line_count,snappy"`
	Label      string  `parquet:"score_label,dict,snappy"`
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteFileScoresParquet writes a slice of FileScore structs to a Parquet file.
func WriteFileScoresParquet(data []FileScore, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes rows with a schema inferred from the struct tags of T.
func writeRows[T any](data []T, outputPath string) (err error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertRunRecords converts schema.RunRecord to AnalysisRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:             record.AnalysisID,
			Language:               record.Language,
			RootPath:               record.RootPath,
			RepoRoot:               record.RepoRoot,
			CommitHash:             record.CommitHash,
			StartTime:              record.StartTime,
			EndTime:                record.EndTime,
			RunDurationMs:          record.RunDurationMs,
			TotalFiles:             record.TotalFiles,
			TotalLOC:               record.TotalLOC,
			AverageComplexity:      record.AverageComplexity,
			Percentile95Complexity: record.Percentile95Complexity,
			ConfigParams:           record.ConfigParams,
		}
	}
	return result
}

// ConvertFileScoreRecords converts schema.FileScoreRecord to FileScore for Parquet export.
func ConvertFileScoreRecords(records []schema.FileScoreRecord) []FileScore {
	result := make([]FileScore, len(records))
	for i, record := range records {
		result[i] = FileScore{
			AnalysisID: record.AnalysisID,
			FilePath:   record.FilePath,
			Score:      record.Score,
			Lines:      record.Lines,
			Label:      record.Label,
		}
	}
	return result
}
