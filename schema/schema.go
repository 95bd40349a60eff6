// Package schema has models and enums shared by all parts of codequal.
package schema

// ScoreEntry is the complexity score of a single file (or of all units the
// external tool reported under one path).
type ScoreEntry struct {
	Path  string  `json:"path"`            // File path as discovered or as reported by the tool
	Score float64 `json:"score"`           // Tool-defined complexity score
	Lines int     `json:"lines,omitempty"` // Line count of the file when known
}

// Summary holds the aggregate statistics of one analysis run.
type Summary struct {
	TotalFiles             int     `json:"total_files"`
	TotalLOC               int     `json:"total_loc"`
	AverageComplexity      float64 `json:"average_complexity"`
	Percentile95Complexity float64 `json:"percentile_95_complexity"`
}

// Report is the terminal output of an analysis run.
// FileScores is always sorted by descending score.
type Report struct {
	Language   string       `json:"language"`
	Root       string       `json:"root"`
	Mode       AnalysisMode `json:"mode"`
	Tool       string       `json:"tool"`
	Bands      ScoreBands   `json:"bands"`
	Summary    Summary      `json:"summary"`
	FileScores []ScoreEntry `json:"file_scores"`
}

// Top returns at most n of the highest scoring entries.
func (r *Report) Top(n int) []ScoreEntry {
	if n < 0 || n >= len(r.FileScores) {
		return r.FileScores
	}
	return r.FileScores[:n]
}
