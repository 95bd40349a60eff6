package core

import (
	"slices"

	"github.com/huangsam/codequal/schema"
)

// topPercent is the share of the highest scores averaged into the
// 95th percentile figure.
const topPercent = 5

// Summarize reduces score entries into aggregate statistics.
// Zero entries yield a zero Summary. The entries are not reordered.
func Summarize(entries []schema.ScoreEntry, totalLOC int) schema.Summary {
	n := len(entries)
	if n == 0 {
		return schema.Summary{}
	}

	scores := make([]float64, n)
	sum := 0.0
	for i, e := range entries {
		scores[i] = e.Score
		sum += e.Score
	}

	// Worst files first; average the top ceil(n * 5%) of them
	slices.SortFunc(scores, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		default:
			return 0
		}
	})
	top := PercentileCount(n)
	topSum := 0.0
	for _, s := range scores[:top] {
		topSum += s
	}

	return schema.Summary{
		TotalFiles:             n,
		TotalLOC:               totalLOC,
		AverageComplexity:      sum / float64(n),
		Percentile95Complexity: topSum / float64(top),
	}
}

// PercentileCount returns ceil(n * 5%), the number of entries that make up
// the worst 5%. It is at least 1 whenever n is at least 1. Integer math keeps
// exact multiples of 20 from rounding up.
func PercentileCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*topPercent + 99) / 100
}
