package plugin

import "github.com/huangsam/codequal/schema"

// Ruby scores each .rb file with `flog -c`, whose first output line is the file total.
func Ruby() *Plugin {
	return &Plugin{
		ID:         "ruby",
		Name:       "Ruby",
		Mode:       schema.PerFileMode,
		Extensions: []string{".rb"},
		Tool:       Tool{Binary: "flog", Flags: []string{"-c"}},
		Bands:      schema.ScoreBands{Critical: 60, High: 40, Moderate: 20},
		ParseFile:  ParseLeadingTotal,
	}
}

// Go scores a whole module with `gocyclo .`, one line per function.
func Go() *Plugin {
	return &Plugin{
		ID:           "go",
		Name:         "Go",
		Mode:         schema.WholeProjectMode,
		Extensions:   []string{".go"},
		Tool:         Tool{Binary: "gocyclo", Flags: []string{"."}},
		Bands:        schema.ScoreBands{Critical: 50, High: 30, Moderate: 15},
		ParseProject: ParseScoreLines,
	}
}
