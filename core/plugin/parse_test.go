package plugin

import (
	"strings"
	"testing"

	"github.com/huangsam/codequal/schema"
	"github.com/stretchr/testify/assert"
)

func TestParseLeadingTotal(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantScore float64
		wantOK    bool
	}{
		{"flog total", "   42.5: flog total\n     8.1: flog/method average\n", 42.5, true},
		{"only first line consulted", "12.0: foo.rb\nother garbage", 12.0, true},
		{"integer score", "7: foo.rb", 7, true},
		{"leading blank lines", "\n\n  3.25: total", 3.25, true},
		{"empty", "", 0, false},
		{"whitespace only", "  \n\t", 0, false},
		{"no colon", "12.0 foo.rb", 0, false},
		{"non-numeric leading token", "total: 12.0", 0, false},
		{"garbage first line", "error: something\n12.0: foo.rb", 0, false},
		{"not a number", "NaN: foo.rb", 0, false},
		{"infinite", "Inf: foo.rb", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, ok := ParseLeadingTotal([]byte(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestParseScoreLines(t *testing.T) {
	t.Run("accumulates repeated paths", func(t *testing.T) {
		raw := "3 main Foo main.go:12:1\n4 main Bar main.go:30:1\n"
		entries := ParseScoreLines([]byte(raw))
		assert.Equal(t, []schema.ScoreEntry{{Path: "main.go", Score: 7}}, entries)
	})

	t.Run("keeps first appearance order", func(t *testing.T) {
		raw := "7 func Foo main.go:12:1\n" +
			"9 pkg (*T).Run pkg/run.go:5:1\n" +
			"2 main init main.go:3:1\n"
		entries := ParseScoreLines([]byte(raw))
		assert.Equal(t, []schema.ScoreEntry{
			{Path: "main.go", Score: 9},
			{Path: "pkg/run.go", Score: 9},
		}, entries)
	})

	t.Run("skips malformed lines", func(t *testing.T) {
		raw := "Average: 3.2\n" +
			"x main Foo main.go:1:1\n" +
			"5 main Foo\n" +
			"\n" +
			"2.5 main Foo float.go:1:1\n" +
			"6 main Foo :1:1\n" +
			"1 main Ok ok.go:1:1\n"
		entries := ParseScoreLines([]byte(raw))
		assert.Equal(t, []schema.ScoreEntry{{Path: "ok.go", Score: 1}}, entries)
	})

	t.Run("oversized line does not end the parse", func(t *testing.T) {
		raw := "3 p A a.go:1:1\n" + strings.Repeat("x", 2<<20) + "\n4 p B b.go:2:1\n"
		entries := ParseScoreLines([]byte(raw))
		assert.Equal(t, []schema.ScoreEntry{
			{Path: "a.go", Score: 3},
			{Path: "b.go", Score: 4},
		}, entries)
	})

	t.Run("crlf line endings", func(t *testing.T) {
		entries := ParseScoreLines([]byte("2 p A a.go:1:1\r\n5 p B a.go:9:1\r\n"))
		assert.Equal(t, []schema.ScoreEntry{{Path: "a.go", Score: 7}}, entries)
	})

	t.Run("path without position", func(t *testing.T) {
		entries := ParseScoreLines([]byte("4 main Foo main.go"))
		assert.Equal(t, []schema.ScoreEntry{{Path: "main.go", Score: 4}}, entries)
	})

	t.Run("empty output", func(t *testing.T) {
		assert.Empty(t, ParseScoreLines(nil))
	})
}
