package schema_test

import (
	"testing"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
)

func TestScoreBandsLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Critical Score Upper", 100.0, "Critical"},
		{"Critical Score Lower", 80.0, "Critical"},
		{"High Score Upper", 79.9, "High"},
		{"High Score Lower", 60.0, "High"},
		{"Moderate Score Upper", 59.9, "Moderate"},
		{"Moderate Score Lower", 40.0, "Moderate"},
		{"Low Score Upper", 39.9, "Low"},
		{"Low Score Lower", 0.0, "Low"},
		{"Negative Score", -10.0, "Low"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.DefaultBands.Label(tt.score))
		})
	}
}

func TestEnrichEntries(t *testing.T) {
	bands := schema.ScoreBands{Critical: 30, High: 20, Moderate: 10}
	entries := []schema.ScoreEntry{
		{Path: "a.rb", Score: 35.0, Lines: 120}, // Critical
		{Path: "b.rb", Score: 21.5},             // High
		{Path: "c.rb", Score: 2.0},              // Low
	}

	enriched := schema.EnrichEntries(entries, bands)

	assert.Len(t, enriched, 3)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Critical", enriched[0].Label)
	assert.Equal(t, "a.rb", enriched[0].Path)
	assert.Equal(t, 120, enriched[0].Lines)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "High", enriched[1].Label)
	assert.Equal(t, 3, enriched[2].Rank)
	assert.Equal(t, "Low", enriched[2].Label)
}

func TestReportTop(t *testing.T) {
	report := schema.Report{FileScores: []schema.ScoreEntry{
		{Path: "a", Score: 3}, {Path: "b", Score: 2}, {Path: "c", Score: 1},
	}}

	assert.Len(t, report.Top(2), 2)
	assert.Equal(t, "a", report.Top(2)[0].Path)
	assert.Len(t, report.Top(5), 3)
	assert.Len(t, report.Top(-1), 3)
	assert.Empty(t, (&schema.Report{}).Top(5))
}
