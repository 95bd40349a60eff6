package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *schema.Report {
	return &schema.Report{
		Language: "ruby",
		Root:     "/src/app",
		Mode:     schema.PerFileMode,
		Tool:     "flog -c",
		Bands:    schema.ScoreBands{Critical: 60, High: 40, Moderate: 20},
		Summary: schema.Summary{
			TotalFiles: 3, TotalLOC: 60, AverageComplexity: 30, Percentile95Complexity: 65,
		},
		FileScores: []schema.ScoreEntry{
			{Path: "lib/big.rb", Score: 65, Lines: 40},
			{Path: "lib/mid.rb", Score: 20, Lines: 15},
			{Path: "lib/small.rb", Score: 5, Lines: 5},
		},
	}
}

func sampleConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:  2,
		Workers:      4,
		Precision:    1,
		Width:        120,
		CacheBackend: schema.SQLiteBackend,
	}
}

func noColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestWriteTextReport(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer
	err := writeTextReport(&buf, sampleReport(), sampleConfig(), createFormatter(1), 1500*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "--- Code Quality Report ---\nOverall Metrics for Ruby:\n"))
	assert.Contains(t, out, "  - Total Files Analyzed: 3\n")
	assert.Contains(t, out, "  - Total Lines of Code:  60\n")
	assert.Contains(t, out, "  - Average Complexity:   30.00\n")
	assert.Contains(t, out, "  - 95th Percentile Avg:  65.00 (Avg. of worst 5%)\n")
	assert.Contains(t, out, "Top 2 Most Complex Files:")
	assert.Contains(t, out, "lib/big.rb")
	assert.Contains(t, out, "65.0")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "Moderate")
	assert.NotContains(t, out, "lib/small.rb", "limit applies")
	assert.Contains(t, out, `with 4 workers using "flog -c"`)
}

func TestWriteTextReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	report := &schema.Report{Language: "go", Tool: "gocyclo ."}
	require.NoError(t, writeTextReport(&buf, report, sampleConfig(), createFormatter(1), time.Second))

	out := buf.String()
	assert.Contains(t, out, "Overall Metrics for Go:\nCould not analyze any files.\n")
	assert.NotContains(t, out, "Most Complex Files")
}

func TestWriteJSONReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSONReport(&buf, sampleReport(), 2))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ruby", got["language"])
	assert.Equal(t, "per-file", got["mode"])
	assert.Equal(t, "flog -c", got["tool"])

	summary := got["summary"].(map[string]any)
	assert.Equal(t, float64(3), summary["total_files"])
	assert.Equal(t, float64(65), summary["percentile_95_complexity"])

	scores := got["file_scores"].([]any)
	require.Len(t, scores, 2)
	first := scores[0].(map[string]any)
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, "lib/big.rb", first["path"])
	assert.Equal(t, "Critical", first["label"])
	assert.Equal(t, float64(40), first["lines"])

	assert.Contains(t, buf.String(), `"total_files": 3`, "two-space indentation")
}

func TestWriteCSVReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVReport(&buf, sampleReport(), -1, createFormatter(2)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "rank,path,score,label,lines,language", lines[0])
	assert.Equal(t, "1,lib/big.rb,65.00,Critical,40,ruby", lines[1])
	assert.Equal(t, "3,lib/small.rb,5.00,Low,5,ruby", lines[3])
}

func TestWriteReportToFile(t *testing.T) {
	cfg := sampleConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.csv")

	require.NoError(t, WriteReport(sampleReport(), cfg, time.Second))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"), "header and two limited rows")
}

func TestWriteReportBadFile(t *testing.T) {
	cfg := sampleConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "missing", "report.json")
	assert.Error(t, WriteReport(sampleReport(), cfg, time.Second))
}

func TestWriteLanguages(t *testing.T) {
	infos := []schema.LanguageInfo{
		{ID: "go", Name: "Go", Mode: schema.WholeProjectMode, Extensions: []string{".go"}, Tool: "gocyclo .", Available: false},
		{ID: "ruby", Name: "Ruby", Mode: schema.PerFileMode, Extensions: []string{".rb"}, Tool: "flog -c", Available: true},
	}

	var buf bytes.Buffer
	require.NoError(t, writeCSVLanguages(&buf, infos))
	assert.Equal(t, "id,name,mode,extensions,tool,available\n"+
		"go,Go,whole-project,.go,gocyclo .,false\n"+
		"ruby,Ruby,per-file,.rb,flog -c,true\n", buf.String())

	noColor(t)
	buf.Reset()
	require.NoError(t, writeLanguageTable(&buf, infos))
	assert.Contains(t, buf.String(), "missing")
	assert.Contains(t, buf.String(), "whole-project")

	cfg := sampleConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "languages.json")
	require.NoError(t, WriteLanguages(infos, cfg))
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "ruby"`)
}

func TestGetMaxTablePathWidth(t *testing.T) {
	assert.Equal(t, 15, GetMaxTablePathWidth(&contract.Config{Width: 40}))
	assert.Equal(t, 45, GetMaxTablePathWidth(&contract.Config{Width: 100}))
	assert.Equal(t, 70, GetMaxTablePathWidth(&contract.Config{Width: 400}))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ruby", displayName("ruby"))
	assert.Equal(t, "Go", displayName("go"))
	assert.Equal(t, "", displayName(""))
}

func TestFormatLines(t *testing.T) {
	assert.Equal(t, "-", formatLines(0))
	assert.Equal(t, "12", formatLines(12))
}
