// Package plugin holds the language plugins: how source files are found,
// which external tool scores them, and how that tool's output is read.
package plugin

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/codequal/internal/contract"
	"github.com/huangsam/codequal/schema"
)

// Tool is an external analysis binary and the fixed flags it is always given.
type Tool struct {
	Binary string   `json:"binary"`
	Flags  []string `json:"flags"`
}

// FileParser reads the output of a per-file run. It reports false when the
// output holds no usable score; that is not an error.
type FileParser func(raw []byte) (float64, bool)

// ProjectParser reads the output of a whole-project run. Scores of repeated
// paths are summed and entries keep the order in which paths first appeared.
type ProjectParser func(raw []byte) []schema.ScoreEntry

// Plugin is the immutable behavior bundle of one language.
// PerFile plugins set ParseFile; WholeProject plugins set ParseProject.
type Plugin struct {
	ID           string
	Name         string
	Mode         schema.AnalysisMode
	Extensions   []string
	Tool         Tool
	Bands        schema.ScoreBands
	ParseFile    FileParser
	ParseProject ProjectParser
}

// Locate recursively finds the files under root carrying one of the plugin's
// extensions. Hidden files and directories are skipped. A missing or
// unreadable root yields an empty result.
func (p *Plugin) Locate(root string) []string {
	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return fs.SkipAll
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && p.matches(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// matches reports whether name ends with one of the plugin's extensions.
func (p *Plugin) matches(name string) bool {
	return slices.ContainsFunc(p.Extensions, func(ext string) bool {
		return strings.HasSuffix(name, ext) && len(name) > len(ext)
	})
}

// Invoke runs the plugin's tool against target and returns its standard output.
// PerFile: `<binary> <flags...> <file>`. WholeProject: `<binary> <flags...>`
// with the working directory set to the project root.
func (p *Plugin) Invoke(ctx context.Context, runner contract.ToolRunner, target string) ([]byte, error) {
	switch p.Mode {
	case schema.PerFileMode:
		args := append(slices.Clone(p.Tool.Flags), target)
		return runner.Run(ctx, "", p.Tool.Binary, args...)
	case schema.WholeProjectMode:
		return runner.Run(ctx, target, p.Tool.Binary, p.Tool.Flags...)
	default:
		return nil, fmt.Errorf("%w: %q", contract.ErrUnknownAnalysisMode, p.Mode)
	}
}

// WithTool returns a copy of the plugin whose tool is replaced by the
// non-empty parts of override. The receiver is left untouched.
func (p *Plugin) WithTool(override contract.ToolOverride) *Plugin {
	clone := *p
	clone.Tool = Tool{Binary: p.Tool.Binary, Flags: slices.Clone(p.Tool.Flags)}
	if override.Binary != "" {
		clone.Tool.Binary = override.Binary
	}
	if override.Flags != nil {
		clone.Tool.Flags = slices.Clone(override.Flags)
	}
	return &clone
}

// Command renders the tool invocation for display.
func (p *Plugin) Command() string {
	return strings.TrimSpace(p.Tool.Binary + " " + strings.Join(p.Tool.Flags, " "))
}
