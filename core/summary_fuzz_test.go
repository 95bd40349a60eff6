package core

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/huangsam/codequal/schema"
)

// FuzzSummarize checks that the worst 5% average never falls below the mean.
func FuzzSummarize(f *testing.F) {
	f.Add("[1, 2, 3, 4]", 10)
	f.Add("[0]", 0)
	f.Add("[5.5, 5.5, 5.5]", 3)
	f.Add("[]", 0)

	f.Fuzz(func(t *testing.T, scoresJSON string, totalLOC int) {
		var scores []float64
		if err := json.Unmarshal([]byte(scoresJSON), &scores); err != nil {
			return
		}
		entries := make([]schema.ScoreEntry, 0, len(scores))
		for _, s := range scores {
			if math.IsNaN(s) || math.IsInf(s, 0) || math.Abs(s) > 1e12 {
				return
			}
			entries = append(entries, schema.ScoreEntry{Path: "f", Score: s})
		}

		summary := Summarize(entries, totalLOC)
		if summary.TotalFiles != len(entries) {
			t.Fatalf("TotalFiles = %d, want %d", summary.TotalFiles, len(entries))
		}
		if len(entries) == 0 {
			return
		}
		const eps = 1e-6
		if summary.Percentile95Complexity+eps*math.Max(1, math.Abs(summary.AverageComplexity)) < summary.AverageComplexity {
			t.Fatalf("p95 %v below average %v", summary.Percentile95Complexity, summary.AverageComplexity)
		}
	})
}
