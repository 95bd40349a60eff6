package plugin

import (
	"math"
	"strings"
	"testing"
)

// FuzzParseLeadingTotal ensures any output either yields a finite score or none.
func FuzzParseLeadingTotal(f *testing.F) {
	f.Add("   25.3: flog total\n   12.5: flog/method average\n")
	f.Add("no colon here")
	f.Add("NaN: flog total")
	f.Add("")
	f.Add(":")

	f.Fuzz(func(t *testing.T, raw string) {
		score, ok := ParseLeadingTotal([]byte(raw))
		if !ok {
			if score != 0 {
				t.Fatalf("score %v returned without ok", score)
			}
			return
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			t.Fatalf("non-finite score %v from %q", score, raw)
		}
		if !strings.Contains(raw, ":") {
			t.Fatalf("score parsed from %q without a colon", raw)
		}
	})
}

// FuzzParseScoreLines ensures paths are unique and never empty.
func FuzzParseScoreLines(f *testing.F) {
	f.Add("12 main main main.go:10:1\n3 main helper main.go:20:1\n")
	f.Add("x y z\n")
	f.Add("7 p f :1:1\n")

	f.Fuzz(func(t *testing.T, raw string) {
		seen := make(map[string]struct{})
		for _, e := range ParseScoreLines([]byte(raw)) {
			if e.Path == "" {
				t.Fatalf("empty path from %q", raw)
			}
			if _, dup := seen[e.Path]; dup {
				t.Fatalf("duplicate path %q from %q", e.Path, raw)
			}
			seen[e.Path] = struct{}{}
		}
	})
}
