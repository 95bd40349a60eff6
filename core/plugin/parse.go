package plugin

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/codequal/schema"
)

// ParseLeadingTotal reads a score from the first line of the output,
// formatted as `<number>: <anything>`. Output without a colon or with a
// non-numeric leading field has no score.
func ParseLeadingTotal(raw []byte) (float64, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return 0, false
	}
	firstLine, _, _ := strings.Cut(text, "\n")
	field, _, found := strings.Cut(strings.TrimSpace(firstLine), ":")
	if !found {
		return 0, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}

// ParseScoreLines reads whitespace-separated lines of the form
// `<int score> <pkg> <func> <path:line:col>`. Lines that do not fit are
// skipped, whatever their length. Repeated paths accumulate by addition.
func ParseScoreLines(raw []byte) []schema.ScoreEntry {
	var entries []schema.ScoreEntry
	index := make(map[string]int)

	for line := range bytes.Lines(raw) {
		fields := strings.Fields(string(line))
		if len(fields) < 4 {
			continue
		}
		score, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		path, _, _ := strings.Cut(fields[3], ":")
		if path == "" {
			continue
		}
		if i, ok := index[path]; ok {
			entries[i].Score += float64(score)
			continue
		}
		index[path] = len(entries)
		entries = append(entries, schema.ScoreEntry{Path: path, Score: float64(score)})
	}
	return entries
}
