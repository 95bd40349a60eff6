package schema

import "time"

// RunRecord represents a row from the codequal_analysis_runs table.
type RunRecord struct {
	AnalysisID             int64
	Language               string
	RootPath               string
	RepoRoot               *string
	CommitHash             *string
	StartTime              time.Time
	EndTime                *time.Time
	RunDurationMs          *int32
	TotalFiles             int32
	TotalLOC               int64
	AverageComplexity      float64
	Percentile95Complexity float64
	ConfigParams           *string
}

// FileScoreRecord represents a row from the codequal_file_scores table.
type FileScoreRecord struct {
	AnalysisID int64
	FilePath   string
	Score      float64
	Lines      int32
	Label      string
}

// CachedScore is the payload stored in the score cache for one file.
// Found is false when the tool ran but its output had no parsable score.
type CachedScore struct {
	Score float64 `json:"score"`
	Found bool    `json:"found"`
}
